package domain

import "maps"

// Damage codes emitted by the classifier. The order follows the label
// encoder used at training time, which sorted the label strings.
const (
	DamageAffected  = 0
	DamageDestroyed = 1
	DamageMajor     = 2
	DamageMinor     = 3
	DamageNone      = 4
)

// DamageLabel is the display text and color for one damage code.
type DamageLabel struct {
	Text  string
	Color string
}

var damageLabels = map[int]DamageLabel{
	DamageNone:      {Text: "No Damage", Color: "#2E8B57"},
	DamageAffected:  {Text: "Affected (1-9%)", Color: "#FFD700"},
	DamageMinor:     {Text: "Minor (10-25%)", Color: "#FFA500"},
	DamageDestroyed: {Text: "Destroyed (>50%)", Color: "#B22222"},
	DamageMajor:     {Text: "Major (26-50%)", Color: "#FF6347"},
}

// UnknownDamage is shown for any code missing from the table.
var UnknownDamage = DamageLabel{Text: "Unknown", Color: "#808080"}

// DamageLabels returns a copy of the label table.
func DamageLabels() map[int]DamageLabel {
	return maps.Clone(damageLabels)
}

// Result is a prediction code resolved against the label table.
type Result struct {
	Code  int
	Label string
	Color string
	Known bool
}

// Text is the sentence displayed to the user.
func (r Result) Text() string {
	return "Predicted Damage Level: " + r.Label
}

// Present maps a prediction code to its label and color. It is total:
// codes outside the table resolve to UnknownDamage.
func Present(code int) Result {
	l, ok := damageLabels[code]
	if !ok {
		l = UnknownDamage
	}
	return Result{Code: code, Label: l.Text, Color: l.Color, Known: ok}
}
