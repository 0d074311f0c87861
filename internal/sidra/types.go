package sidra

// RawRecord is one element of a SIDRA /values payload. Every field is
// string-encoded by the API, including the observation value. The first
// element of the payload reuses this shape to carry column descriptions
// instead of data ("V": "Valor" and so on).
type RawRecord struct {
	LocalityCode string `json:"D1C"`
	LocalityName string `json:"D1N"`
	VariableCode string `json:"D2C"`
	VariableName string `json:"D2N"`
	PeriodCode   string `json:"D3C"`
	PeriodName   string `json:"D3N"`
	UnitCode     string `json:"MC"`
	UnitName     string `json:"MN"`
	LevelCode    string `json:"NC"`
	LevelName    string `json:"NN"`
	Value        string `json:"V"`
}
