package wizard

import (
	"github.com/goliatone/go-credlink/pkg/assemble"
	"github.com/goliatone/go-credlink/pkg/model"
)

// Payload finalizes the session into a submission payload. Callers are
// expected to have walked the wizard to its end, so every reachable
// credential slide has already passed its validity predicate.
func (s *Session) Payload() model.SubmissionPayload {
	return assemble.BuildPayload(s.config, s.groups, s.values, s.uploads, s.clientCopy())
}
