package providers

// ResolutionKind is the explicit three-way outcome of a registrar lookup.
type ResolutionKind string

const (
	// ResolutionKnown means the submitted id matched a directory entry.
	ResolutionKnown ResolutionKind = "known"
	// ResolutionCustom means the respondent picked the free-text sentinel.
	ResolutionCustom ResolutionKind = "custom"
	// ResolutionUnrecognized means the id matched nothing, e.g. a stale
	// selection from a retired directory entry. Callers degrade gracefully
	// by carrying the raw id verbatim.
	ResolutionUnrecognized ResolutionKind = "unrecognized"
)

// Resolution is the result of resolving a submitted registrar field.
type Resolution struct {
	Kind ResolutionKind
	// Provider is set only for ResolutionKnown.
	Provider *ServiceProvider
	// Value is the display value to record: provider name, free-text name,
	// or the raw submitted id, depending on Kind.
	Value string
}

// ResolveRegistrar maps a submitted registrar id (plus the free-text name
// accompanying a custom selection) to an explicit tagged result. It never
// fails: unrecognized ids fall through verbatim.
func ResolveRegistrar(id, customName string) Resolution {
	if p, ok := RegistrarByID(id); ok {
		return Resolution{Kind: ResolutionKnown, Provider: p, Value: p.Name}
	}
	if id == CustomRegistrarID {
		return Resolution{Kind: ResolutionCustom, Value: customName}
	}
	return Resolution{Kind: ResolutionUnrecognized, Value: id}
}
