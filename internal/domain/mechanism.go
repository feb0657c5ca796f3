package domain

// ShakeMap mechanism codes.
const (
	MechanismAll        = "ALL"
	MechanismStrikeSlip = "SS"
	MechanismNormal     = "NM"
	MechanismReverse    = "RS"
)

// RakeToMechanism classifies a rake angle in degrees. A nil rake is unknown
// and maps to ALL. Later ranges take precedence over earlier ones.
func RakeToMechanism(rake *float64) string {
	if rake == nil {
		return MechanismAll
	}
	r := *rake

	mech := MechanismAll
	if (r >= -180 && r <= -150) || (r >= -30 && r <= 30) || (r >= 150 && r <= 180) {
		mech = MechanismStrikeSlip
	}
	if r >= -120 && r <= -60 {
		mech = MechanismNormal
	}
	if r >= 60 && r <= 120 {
		mech = MechanismReverse
	}
	return mech
}
