package domain

// Movie domain errors.
var (
	ErrMovieNotFound = &Error{Code: ENOTFOUND, Message: "Movie not found"}
)

// Movie is a catalog entry as served by the backend.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Director    string `json:"director"`
	ReleaseYear int    `json:"release_year"`
	PriceCents  int64  `json:"price_cents"`
	PosterURL   string `json:"poster_url"`
	Stock       int    `json:"stock"`
}

// genreNames maps the backend's genre codes to display names.
var genreNames = map[string]string{
	"ACTION":    "Action",
	"ADVENTURE": "Adventure",
	"SCI_FI":    "Science Fiction",
	"COMEDY":    "Comedy",
	"DRAMA":     "Drama",
	"FANTASY":   "Fantasy",
	"HORROR":    "Horror",
	"MUSICAL":   "Musical",
	"ROMANCE":   "Romance",
	"THRILLER":  "Thriller",
	"WESTERN":   "Western",
	"DOCUMENTARY": "Documentary",
	"ANIMATION": "Animation",
	"BIOGRAPHY": "Biography",
	"CRIME":     "Crime",
	"FAMILY":    "Family",
	"WAR":       "War",
	"HISTORY":   "History",
	"MYSTERY":   "Mystery",
	"SPORTS":    "Sports",
}

// GenreName returns the display name for a backend genre code.
// Unknown codes are returned as-is.
func GenreName(code string) string {
	if name, ok := genreNames[code]; ok {
		return name
	}
	return code
}

// Genres lists the genre codes accepted by the admin movie form.
func Genres() []string {
	return []string{
		"ACTION", "ADVENTURE", "SCI_FI", "COMEDY", "DRAMA", "FANTASY",
		"HORROR", "MUSICAL", "ROMANCE", "THRILLER", "WESTERN",
		"DOCUMENTARY", "ANIMATION", "BIOGRAPHY", "CRIME", "FAMILY",
		"WAR", "HISTORY", "MYSTERY", "SPORTS",
	}
}
