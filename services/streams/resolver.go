package streams

import (
	"context"
	"log"
	"net/http"

	"reelgrid/models"
)

// catalog is the slice of the metadata service the resolver needs: it only
// ever asks for a title's details to learn its IMDb id.
type catalog interface {
	MovieDetails(ctx context.Context, id int64) (*models.Title, error)
	SeriesDetails(ctx context.Context, id int64) (*models.Title, error)
}

// Resolver turns catalog ids into playable stream candidates. Resolution is
// two hops: look the title up to obtain its IMDb id, then query the stream
// source with it.
type Resolver struct {
	catalog catalog
	source  *sourceClient
}

func NewResolver(cat catalog, sourceBaseURL string, client *http.Client) *Resolver {
	return &Resolver{
		catalog: cat,
		source:  newSourceClient(sourceBaseURL, client),
	}
}

// MovieStreams resolves streams for a movie. found is false when the movie
// does not exist or carries no IMDb id; a reachable movie whose stream
// lookup failed reports found with an empty list.
func (r *Resolver) MovieStreams(ctx context.Context, id int64) ([]models.Stream, bool) {
	title, err := r.catalog.MovieDetails(ctx, id)
	if err != nil {
		log.Printf("[streams] movie %d lookup failed: %v", id, err)
		return nil, false
	}
	if title == nil || title.IMDBID == "" {
		return nil, false
	}

	streams, err := r.source.movieStreams(ctx, title.IMDBID)
	if err != nil {
		log.Printf("[streams] source lookup for movie %s failed: %v", title.IMDBID, err)
		return []models.Stream{}, true
	}
	return streams, true
}

// EpisodeStreams resolves streams for one episode of a series.
func (r *Resolver) EpisodeStreams(ctx context.Context, id int64, season, episode int) ([]models.Stream, bool) {
	title, err := r.catalog.SeriesDetails(ctx, id)
	if err != nil {
		log.Printf("[streams] series %d lookup failed: %v", id, err)
		return nil, false
	}
	if title == nil || title.IMDBID == "" {
		return nil, false
	}

	streams, err := r.source.episodeStreams(ctx, title.IMDBID, season, episode)
	if err != nil {
		log.Printf("[streams] source lookup for series %s S%02dE%02d failed: %v", title.IMDBID, season, episode, err)
		return []models.Stream{}, true
	}
	return streams, true
}
