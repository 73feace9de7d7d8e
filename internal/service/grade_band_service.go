package service

// GradeBandService maps a completion percentage to a CEFR-style band shown
// alongside scores. Pure lookup, no state.
type GradeBandService interface {
	BandForPercentage(percentage float64) string
}

type gradeBandService struct{}

func NewGradeBandService() GradeBandService {
	return &gradeBandService{}
}

func (s *gradeBandService) BandForPercentage(percentage float64) string {
	switch {
	case percentage >= 90:
		return "C2"
	case percentage >= 80:
		return "C1"
	case percentage >= 65:
		return "B2"
	case percentage >= 50:
		return "B1"
	case percentage >= 30:
		return "A2"
	default:
		return "A1"
	}
}
