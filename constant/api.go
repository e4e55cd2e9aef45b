package constant

// Default endpoints of the metadata services used by the episode synchronizer.
const (
	ArmAPI      = "https://arm.haglund.dev/api/v2"
	CinemetaAPI = "https://v3-cinemeta.strem.io"
	JikanAPI    = "https://api.jikan.moe/v4"
	TMDBWeb     = "https://www.themoviedb.org"
)
