package usecase

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// NormalizePage clamps pagination input to sane bounds.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit
}
