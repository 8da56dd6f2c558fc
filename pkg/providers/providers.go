// Package providers holds the static directory of external services: domain
// registrars selectable inside a registrar field, and the login-URL/logo
// tables for preset platforms. The directory never mutates after process
// start, so unsynchronized concurrent reads are safe.
package providers

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CustomRegistrarID is the sentinel id a respondent submits when their
// registrar is not in the directory and they supplied a free-text name.
const CustomRegistrarID = "custom"

// ServiceProvider is one directory entry. ID is the wire identifier used
// inside submitted registrar fields.
type ServiceProvider struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	LoginURL string `yaml:"loginUrl"`
	Logo     string `yaml:"logo,omitempty"`
}

//go:embed registry.yaml
var registryYAML []byte

type registryDoc struct {
	Registrars        []ServiceProvider `yaml:"registrars"`
	PlatformLoginURLs map[string]string `yaml:"platformLoginUrls"`
	PlatformLogos     map[string]string `yaml:"platformLogos"`
}

var (
	registrars        []ServiceProvider
	registrarsByID    map[string]*ServiceProvider
	platformLoginURLs map[string]string
	platformLogos     map[string]string
)

func init() {
	var doc registryDoc
	if err := yaml.Unmarshal(registryYAML, &doc); err != nil {
		panic(fmt.Sprintf("providers: embedded registry: %v", err))
	}
	registrars = doc.Registrars
	registrarsByID = make(map[string]*ServiceProvider, len(registrars))
	for i := range registrars {
		id := registrars[i].ID
		if id == "" || id == CustomRegistrarID {
			panic(fmt.Sprintf("providers: registrar %q: reserved or empty id", registrars[i].Name))
		}
		if _, dup := registrarsByID[id]; dup {
			panic(fmt.Sprintf("providers: registrar id %q: duplicate", id))
		}
		registrarsByID[id] = &registrars[i]
	}
	platformLoginURLs = doc.PlatformLoginURLs
	platformLogos = doc.PlatformLogos
}

// Registrars returns every registrar in directory order. The returned slice
// is shared; callers must not mutate it.
func Registrars() []ServiceProvider {
	return registrars
}

// RegistrarByID looks up a registrar by its wire identifier.
func RegistrarByID(id string) (*ServiceProvider, bool) {
	p, ok := registrarsByID[id]
	return p, ok
}

// PlatformLoginURL returns the canonical login URL for a preset platform by
// exact display-name match.
func PlatformLoginURL(platform string) (string, bool) {
	url, ok := platformLoginURLs[platform]
	return url, ok
}

// PlatformLogo returns the logo asset path registered for a platform, if any.
func PlatformLogo(platform string) (string, bool) {
	logo, ok := platformLogos[platform]
	return logo, ok
}
