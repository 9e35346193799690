package models

// Movie is one row of the fixed catalog. Rows are loaded once by the CSV
// importer and never written by the bot.
type Movie struct {
	ID       int64   `json:"id"`
	ImgURL   string  `json:"img,omitempty"`
	Title    string  `json:"title"`
	Year     int     `json:"year,omitempty"`
	Genre    string  `json:"genre,omitempty"` // comma-delimited labels, e.g. "Crime, Drama"
	Rating   float64 `json:"rating,omitempty"`
	Overview string  `json:"overview,omitempty"`
}
