package shelf

// CabinetLocation is the pre-depth cabinet addressing used by older layout
// data: a cabinet id instead of a group id and no depth axis.
type CabinetLocation struct {
	Floor     int `json:"floor" yaml:"floor"`
	CabinetID int `json:"cabinet_id" yaml:"cabinet_id"`
	Row       int `json:"row" yaml:"row"`
	Column    int `json:"column" yaml:"column"`
}

// FromCabinet converts a cabinet address. The depth stays absent so that,
// used as an occupied entry, it covers every depth of the cell.
func FromCabinet(c CabinetLocation) Location {
	return Location{
		Floor:       c.Floor,
		GroupID:     c.CabinetID,
		GroupRow:    c.Row,
		GroupColumn: c.Column,
	}
}

// FromCabinets converts a list of cabinet addresses.
func FromCabinets(cs []CabinetLocation) []Location {
	out := make([]Location, len(cs))
	for i, c := range cs {
		out[i] = FromCabinet(c)
	}
	return out
}
