package catalog

import (
	"github.com/goccy/go-json"
)

type castMember struct {
	Name *string `json:"name"`
}

type crewMember struct {
	Name *string `json:"name"`
	Job  *string `json:"job"`
}

// ExtractDirector returns the name of the first crew member whose job is
// "Director". A malformed cell, a member without a job, or no director at
// all yields UnknownDirector.
func ExtractDirector(crewJSON string) string {
	var crew []crewMember
	if err := json.Unmarshal([]byte(crewJSON), &crew); err != nil {
		return UnknownDirector
	}
	for _, member := range crew {
		if member.Job == nil {
			return UnknownDirector
		}
	}
	for _, member := range crew {
		if *member.Job != "Director" {
			continue
		}
		if member.Name == nil {
			return UnknownDirector
		}
		return *member.Name
	}
	return UnknownDirector
}

// ExtractCast returns the names of the first limit cast members. A malformed
// cell, or a leading member without a name, yields an empty list.
func ExtractCast(castJSON string, limit int) []string {
	var cast []castMember
	if err := json.Unmarshal([]byte(castJSON), &cast); err != nil {
		return []string{}
	}
	if limit < 0 {
		limit = 0
	}
	if len(cast) > limit {
		cast = cast[:limit]
	}
	names := make([]string, 0, len(cast))
	for _, member := range cast {
		if member.Name == nil {
			return []string{}
		}
		names = append(names, *member.Name)
	}
	return names
}
