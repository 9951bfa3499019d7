package domain

// Genre is the fixed genre enumeration for catalog entries.
type Genre string

// All genres a book can be filed under.
const (
	GenreFiction    Genre = "Fiction"
	GenreNonFiction Genre = "Non-Fiction"
	GenreMystery    Genre = "Mystery"
	GenreSciFi      Genre = "Science Fiction"
	GenreFantasy    Genre = "Fantasy"
	GenreRomance    Genre = "Romance"
	GenreThriller   Genre = "Thriller"
	GenreBiography  Genre = "Biography"
	GenreHistory    Genre = "History"
	GenreSelfHelp   Genre = "Self-Help"
	GenreOther      Genre = "Other"
)

// Genres lists every valid genre in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction,
		GenreNonFiction,
		GenreMystery,
		GenreSciFi,
		GenreFantasy,
		GenreRomance,
		GenreThriller,
		GenreBiography,
		GenreHistory,
		GenreSelfHelp,
		GenreOther,
	}
}

// Valid reports whether g is part of the enumeration.
func (g Genre) Valid() bool {
	for _, known := range Genres() {
		if g == known {
			return true
		}
	}
	return false
}
