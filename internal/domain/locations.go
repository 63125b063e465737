package domain

// allowedLocations is the closed set of campus locations a warden may check
// in at. It is the single source of truth for server validation and the
// kiosk client; changing it is a deployment-time change. Several names carry
// typographic apostrophes ("Queen’s", "St James’") and must stay verbatim.
var allowedLocations = []string{
	"Alwyn Hall",
	"Beech Glade",
	"Bowers Building",
	"Burma Road Student Village",
	"Centre for Sport",
	"Chapel",
	"The Cottage",
	"Fred Wheeler Building",
	"Herbert Jarman Building",
	"Holm Lodge",
	"Kenneth Kettle Building",
	"King Alfred Centre",
	"Martial Rose Library",
	"Masters Lodge",
	"Medecroft",
	"Medecroft Annexe",
	"Paul Chamberlain Building",
	"Queen’s Road Student Village",
	"St Alphege",
	"St Edburga",
	"St Elizabeth’s Hall",
	"St Grimbald’s Court",
	"St James’ Hall",
	"St Swithun’s Lodge",
	"The Stripe",
	"Business School",
	"Tom Atkinson Building",
	"West Downs Centre",
	"West Downs Student Village",
	"Winton Building",
	"Students’ Union",
}

var locationSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(allowedLocations))
	for _, loc := range allowedLocations {
		set[loc] = struct{}{}
	}
	return set
}()

// Locations returns the registry in its fixed display order. The caller must
// not mutate the returned slice.
func Locations() []string {
	return allowedLocations
}

// IsValidLocation reports whether name is a member of the registry.
func IsValidLocation(name string) bool {
	_, ok := locationSet[name]
	return ok
}
