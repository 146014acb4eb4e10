package service

const (
	RatePerPageColor = 5
	RatePerPageMono  = 2
	MaxCopies        = 100
)

// ComputeCost prices a job per page per copy.
func ComputeCost(pages, copies int, color bool) (int64, error) {
	if pages <= 0 || copies <= 0 {
		return 0, ErrInvalidQuantity
	}
	if copies > MaxCopies {
		return 0, ErrTooManyCopies
	}
	rate := int64(RatePerPageMono)
	if color {
		rate = RatePerPageColor
	}
	return int64(pages) * int64(copies) * rate, nil
}
