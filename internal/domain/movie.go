package domain

import "time"

// Movie is a catalog entry. Genre and Director are embedded copies, so editing one
// movie's director does not change any other movie that shares the director.
type Movie struct {
	ID          string
	Title       string
	Description string
	Genre       Genre
	Director    Director
	Actors      []string
	ImagePath   string
	Featured    bool
}

type Genre struct {
	Name        string
	Description string
}

type Director struct {
	Name  string
	Bio   string
	Birth *time.Time
	Death *time.Time
}
