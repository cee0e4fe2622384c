package reportdata

type FlagStatus int

const (
	FlagUnknown FlagStatus = iota
	FlagOK
	FlagBad
)

func (f FlagStatus) String() string {
	switch f {
	case FlagOK:
		return "ok"
	case FlagBad:
		return "bad"
	}
	return "unknown"
}

// Flag is the quality verdict of one sample for one panel. Message is the
// human readable reason when Status is FlagBad.
type Flag struct {
	Status  FlagStatus
	Message string
}

// ParseFlag maps the pipeline's flag value to a Flag: "unknown" and "ok" are
// reserved, every other value is the message of a bad verdict.
func ParseFlag(value string) Flag {
	switch value {
	case "", "unknown":
		return Flag{Status: FlagUnknown}
	case "ok":
		return Flag{Status: FlagOK}
	}
	return Flag{Status: FlagBad, Message: value}
}

// Flag returns the sample's verdict for panelID.
func (s *SampleResult) Flag(panelID string) Flag {
	return ParseFlag(s.Stats.QCFlags[panelID])
}
