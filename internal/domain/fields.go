package domain

// StructureCategory is the kind of structure on the parcel.
type StructureCategory string

const (
	StructureSingleResidence      StructureCategory = "Single Residence"
	StructureOtherMinor           StructureCategory = "Other Minor Structure"
	StructureMultipleResidence    StructureCategory = "Multiple Residence"
	StructureNonresidentialComm   StructureCategory = "Nonresidential Commercial"
	StructureMixedCommResidential StructureCategory = "Mixed Commercial/Residential"
	StructureInfrastructure       StructureCategory = "Infrastructure"
	StructureAgriculture          StructureCategory = "Agriculture"
)

// StructureCategories is the Structure Category domain; the first entry is the default.
var StructureCategories = []StructureCategory{
	StructureSingleResidence,
	StructureOtherMinor,
	StructureMultipleResidence,
	StructureNonresidentialComm,
	StructureMixedCommResidential,
	StructureInfrastructure,
	StructureAgriculture,
}

// RoofConstruction is the roof material.
type RoofConstruction string

const (
	RoofAsphalt        RoofConstruction = "Asphalt"
	RoofTile           RoofConstruction = "Tile"
	RoofUnknown        RoofConstruction = "Unknown"
	RoofMetal          RoofConstruction = "Metal"
	RoofConcrete       RoofConstruction = "Concrete"
	RoofOther          RoofConstruction = "Other"
	RoofWood           RoofConstruction = "Wood"
	RoofCombustible    RoofConstruction = "Combustible"
	RoofFireResistant  RoofConstruction = "Fire Resistant"
	RoofNoDeckPorch    RoofConstruction = "No Deck/Porch"
	RoofNonCombustible RoofConstruction = "Non Combustible"
)

// RoofConstructions is the Roof Construction domain; the first entry is the default.
var RoofConstructions = []RoofConstruction{
	RoofAsphalt,
	RoofTile,
	RoofUnknown,
	RoofMetal,
	RoofConcrete,
	RoofOther,
	RoofWood,
	RoofCombustible,
	RoofFireResistant,
	RoofNoDeckPorch,
	RoofNonCombustible,
}

// Eaves describes how the roof overhang is enclosed.
type Eaves string

const (
	EavesUnenclosed    Eaves = "Unenclosed"
	EavesEnclosed      Eaves = "Enclosed"
	EavesUnknown       Eaves = "Unknown"
	EavesNone          Eaves = "No Eaves"
	EavesNotApplicable Eaves = "Not Applicable"
	EavesCombustible   Eaves = "Combustible"
)

// EavesOptions is the Eaves domain; the first entry is the default.
var EavesOptions = []Eaves{
	EavesUnenclosed,
	EavesEnclosed,
	EavesUnknown,
	EavesNone,
	EavesNotApplicable,
	EavesCombustible,
}

// VentScreen describes attic and foundation vent screening. Some values
// (">30", "Attached Fence") are carried over verbatim from the assessment
// data the model was trained on.
type VentScreen string

const (
	VentMeshFine      VentScreen = `Mesh Screen <= 1/8"`
	VentMeshCoarse    VentScreen = `Mesh Screen > 1/8"`
	VentUnscreened    VentScreen = "Unscreened"
	VentUnknown       VentScreen = "Unknown"
	VentNone          VentScreen = "No Vents"
	VentScreened      VentScreen = "Screened"
	VentOver30        VentScreen = ">30"
	Vent21To30        VentScreen = "21-30"
	VentDeckElevated  VentScreen = "Deck Elevated"
	VentAttachedFence VentScreen = "Attached Fence"
)

// VentScreens is the Vent Screen domain; the first entry is the default.
var VentScreens = []VentScreen{
	VentMeshFine,
	VentMeshCoarse,
	VentUnscreened,
	VentUnknown,
	VentNone,
	VentScreened,
	VentOver30,
	Vent21To30,
	VentDeckElevated,
	VentAttachedFence,
}

// ExteriorSiding is the wall cladding material. Both spellings of
// stucco/brick/cement occur in the training data and are kept distinct.
type ExteriorSiding string

const (
	SidingWood              ExteriorSiding = "Wood"
	SidingStuccoBrickCement ExteriorSiding = "Stucco Brick Cement"
	SidingUnknown           ExteriorSiding = "Unknown"
	SidingMetal             ExteriorSiding = "Metal"
	SidingOther             ExteriorSiding = "Other"
	SidingVinyl             ExteriorSiding = "Vinyl"
	SidingIgnitionResistant ExteriorSiding = "Ignition Resistant"
	SidingCombustible       ExteriorSiding = "Combustible"
	SidingFireResistant     ExteriorSiding = "Fire Resistant"
	SidingStuccoSlashed     ExteriorSiding = "Stucco/Brick/Cement"
)

// ExteriorSidings is the Exterior Siding domain; the first entry is the default.
var ExteriorSidings = []ExteriorSiding{
	SidingWood,
	SidingStuccoBrickCement,
	SidingUnknown,
	SidingMetal,
	SidingOther,
	SidingVinyl,
	SidingIgnitionResistant,
	SidingCombustible,
	SidingFireResistant,
	SidingStuccoSlashed,
}

// WindowPane is the glazing type.
type WindowPane string

const (
	WindowSinglePane  WindowPane = "Single Pane"
	WindowMultiPane   WindowPane = "Multi Pane"
	WindowUnknown     WindowPane = "Unknown"
	WindowNone        WindowPane = "No Windows"
	WindowNoDeckPorch WindowPane = "No Deck/Porch"
	WindowRadiantHeat WindowPane = "Radiant Heat"
	WindowAsphalt     WindowPane = "Asphalt"
)

// WindowPanes is the Window Pane domain; the first entry is the default.
var WindowPanes = []WindowPane{
	WindowSinglePane,
	WindowMultiPane,
	WindowUnknown,
	WindowNone,
	WindowNoDeckPorch,
	WindowRadiantHeat,
	WindowAsphalt,
}

// FenceAttached describes a fence touching the structure.
type FenceAttached string

const (
	FenceNone           FenceAttached = "No Fence"
	FenceCombustible    FenceAttached = "Combustible"
	FenceUnknown        FenceAttached = "Unknown"
	FenceNonCombustible FenceAttached = "Non Combustible"
)

// FenceOptions is the Fence Attached to Structure domain; the first entry is the default.
var FenceOptions = []FenceAttached{
	FenceNone,
	FenceCombustible,
	FenceUnknown,
	FenceNonCombustible,
}

// AssessedValueKey is the form key of the numeric field.
const AssessedValueKey = "assessed_value"

// Field describes one categorical input: its form key, the column name
// the classifier expects and the ordered domain of valid values.
type Field struct {
	Key     string
	Column  string
	Options []string
}

// Default returns the first option of the domain.
func (f Field) Default() string { return f.Options[0] }

// CategoricalFields lists the seven categorical inputs in record order.
var CategoricalFields = []Field{
	{Key: "structure_category", Column: ColumnStructureCategory, Options: options(StructureCategories)},
	{Key: "roof_construction", Column: ColumnRoofConstruction, Options: options(RoofConstructions)},
	{Key: "eaves", Column: ColumnEaves, Options: options(EavesOptions)},
	{Key: "vent_screen", Column: ColumnVentScreen, Options: options(VentScreens)},
	{Key: "exterior_siding", Column: ColumnExteriorSiding, Options: options(ExteriorSidings)},
	{Key: "window_pane", Column: ColumnWindowPane, Options: options(WindowPanes)},
	{Key: "fence_attached", Column: ColumnFenceAttached, Options: options(FenceOptions)},
}

func options[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
