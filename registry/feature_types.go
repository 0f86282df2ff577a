package registry

// categoryDef is one built-in feature category.
type categoryDef struct {
	Name       string         `yaml:"name"`
	Predicates []TagPredicate `yaml:"predicates"`
}

func key(k string) TagPredicate         { return TagPredicate{Key: k} }
func kv(k, v string) TagPredicate      { return TagPredicate{Key: k, Value: v} }
func keyPrefix(k string) TagPredicate  { return TagPredicate{Key: k, Prefix: true} }
func preds(p ...TagPredicate) []TagPredicate { return p }

// builtinCategories is the full category table, 91 categories. Top-level OSM
// keys map to a single wildcard predicate; derived civil-engineering
// categories map to the key=value combinations that identify them in OSM.
var builtinCategories = []categoryDef{
	// Transportation
	{"highway", preds(key("highway"))},
	{"railway", preds(key("railway"))},
	{"aeroway", preds(key("aeroway"))},
	{"waterway", preds(key("waterway"))},
	{"aerialway", preds(key("aerialway"))},
	{"public_transport", preds(key("public_transport"))},

	// Buildings and Infrastructure
	{"building", preds(key("building"))},
	{"barrier", preds(key("barrier"))},
	{"man_made", preds(key("man_made"))},
	{"power", preds(key("power"))},
	{"telecom", preds(key("telecom"))},

	// Land Use and Natural Features
	{"landuse", preds(key("landuse"))},
	{"natural", preds(key("natural"))},
	{"geological", preds(key("geological"))},
	{"boundary", preds(key("boundary"))},

	// Amenities and Services
	{"amenity", preds(key("amenity"))},
	{"shop", preds(key("shop"))},
	{"tourism", preds(key("tourism"))},
	{"leisure", preds(key("leisure"))},
	{"sport", preds(key("sport"))},
	{"healthcare", preds(key("healthcare"))},

	// Administrative and Places
	{"place", preds(key("place"))},
	{"office", preds(key("office"))},
	{"craft", preds(key("craft"))},
	{"military", preds(key("military"))},
	{"emergency", preds(key("emergency"))},

	// Historical and Cultural
	{"historic", preds(key("historic"))},
	{"heritage", preds(key("heritage"))},
	{"archaeological_site", preds(kv("historic", "archaeological_site"))},

	// Civil Engineering and Survey Features
	{"kerb", preds(key("kerb"))},
	{"tunnel", preds(key("tunnel"))},
	{"bridge", preds(key("bridge"), kv("man_made", "bridge"))},
	{"embankment", preds(key("embankment"), kv("man_made", "embankment"))},
	{"retaining_wall", preds(kv("barrier", "retaining_wall"))},
	{"cycle_barrier", preds(kv("barrier", "cycle_barrier"))},
	{"survey_point", preds(kv("man_made", "survey_point"))},
	{"benchmark", preds(kv("man_made", "benchmark"), kv("amenity", "benchmark"))},
	{"marker", preds(key("marker"), kv("man_made", "marker"))},
	{"culvert", preds(kv("tunnel", "culvert"), kv("waterway", "culvert"))},
	{"drain", preds(kv("waterway", "drain"))},
	{"ditch", preds(kv("waterway", "ditch"))},
	{"street_lamp", preds(kv("highway", "street_lamp"), kv("man_made", "street_lamp"))},
	{"traffic_signals", preds(kv("highway", "traffic_signals"))},
	{"bollard", preds(kv("barrier", "bollard"))},
	{"fence", preds(kv("barrier", "fence"))},
	{"wall", preds(kv("barrier", "wall"))},
	{"gate", preds(kv("barrier", "gate"))},
	{"manhole", preds(key("manhole"), kv("man_made", "manhole"))},
	{"utility_pole", preds(kv("man_made", "utility_pole"))},
	{"street_cabinet", preds(kv("man_made", "street_cabinet"))},
	{"fire_hydrant", preds(kv("emergency", "fire_hydrant"), kv("amenity", "fire_hydrant"))},
	{"pipeline", preds(kv("man_made", "pipeline"))},
	{"tower", preds(kv("man_made", "tower"), kv("power", "tower"))},
	{"mast", preds(kv("man_made", "mast"))},
	{"antenna", preds(kv("man_made", "antenna"), kv("telecom", "antenna"))},
	{"substation", preds(kv("power", "substation"))},
	{"generator", preds(kv("power", "generator"))},
	{"transformer", preds(kv("power", "transformer"))},
	{"noise_barrier", preds(kv("barrier", "noise_barrier"))},
	{"sound_barrier", preds(kv("barrier", "sound_barrier"))},
	{"guard_rail", preds(kv("barrier", "guard_rail"))},
	{"crash_barrier", preds(kv("barrier", "crash_barrier"))},
	{"steps", preds(kv("highway", "steps"))},
	{"ramp", preds(key("ramp"), kv("highway", "ramp"))},
	{"elevator", preds(kv("highway", "elevator"))},
	{"escalator", preds(kv("highway", "escalator"), key("conveying"))},
	{"handrail", preds(key("handrail"))},
	{"railing", preds(kv("barrier", "railing"))},

	// Drainage and Inlet Features
	{"inlet", preds(key("inlet"), kv("man_made", "inlet"))},
	{"inlet_grate", preds(kv("inlet", "grate"))},
	{"inlet_kerb_grate", preds(kv("inlet", "kerb_grate"))},
	{"kerb_opening", preds(kv("inlet", "kerb_opening"))},
	{"storm_drain", preds(kv("man_made", "storm_drain"), kv("manhole", "drain"))},
	{"catch_basin", preds(kv("man_made", "catch_basin"))},

	// Additional Categories
	{"route", preds(key("route"))},
	{"traffic_sign", preds(key("traffic_sign"))},
	{"traffic_calming", preds(key("traffic_calming"))},
	{"surface", preds(key("surface"))},
	{"access", preds(key("access"))},
	{"addr", preds(keyPrefix("addr"))},
	{"name", preds(keyPrefix("name"))},
	{"ref", preds(key("ref"))},
	{"operator", preds(key("operator"))},
	{"brand", preds(key("brand"))},
	{"website", preds(key("website"))},
	{"phone", preds(key("phone"))},
	{"opening_hours", preds(key("opening_hours"))},
	{"fee", preds(key("fee"))},
	{"wheelchair", preds(key("wheelchair"))},
	{"smoking", preds(key("smoking"))},
	{"wifi", preds(key("wifi"))},
}

// engineeringCategories is the curated subset for civil-engineering and
// survey work, used by the engineering feature-types endpoint and as the
// category set of the engineering report.
var engineeringCategories = []string{
	"highway", "railway", "aeroway", "waterway", "public_transport",
	"barrier", "man_made", "building",
	"power", "telecom", "amenity",
	"natural", "landuse", "boundary",
	"traffic_sign", "traffic_calming",
	"surface", "access", "kerb",
	"tunnel", "bridge", "embankment", "retaining_wall", "cycle_barrier",
	"survey_point", "benchmark", "marker", "culvert", "drain", "ditch",
	"street_lamp", "traffic_signals", "bollard", "fence", "wall", "gate",
	"manhole", "utility_pole", "street_cabinet", "fire_hydrant", "pipeline",
	"tower", "mast", "antenna", "substation", "generator", "transformer",
	"noise_barrier", "sound_barrier", "guard_rail", "crash_barrier",
	"steps", "ramp", "elevator", "escalator", "handrail", "railing",
	"inlet", "inlet_grate", "inlet_kerb_grate", "kerb_opening", "storm_drain", "catch_basin",
}
