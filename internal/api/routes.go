package api

import (
	"context"
	"image"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/gallery"
	imagepkg "github.com/youruser/cardmaker/internal/image"
)

// Renderer composites a card front.
type Renderer interface {
	RenderCard(in imagepkg.RenderInput) (*image.NRGBA, error)
}

// Assets serves preloaded card artwork.
type Assets interface {
	Frame(id cards.SeriesID) (image.Image, error)
	CardBack() (image.Image, error)
}

// Stylizer turns a photo into an illustrated portrait.
type Stylizer interface {
	Enabled() bool
	Stylize(ctx context.Context, photo []byte, filename string) ([]byte, error)
}

// Gallery stores exported cards.
type Gallery interface {
	Save(ctx context.Context, c gallery.Card) (gallery.Card, error)
	Get(ctx context.Context, id string) (gallery.Card, error)
	List(ctx context.Context, limit int) ([]gallery.Card, error)
	Delete(ctx context.Context, id string) error
}

// Deps are the services the handlers use. Stylizer, Gallery, Blocked and
// Limiter may be nil.
type Deps struct {
	Renderer Renderer
	Assets   Assets
	Stylizer Stylizer
	Gallery  Gallery
	Limits   cards.Limits
	Blocked  *cards.WordList
	Limiter  *RateLimiter
	// PublicURL prefixes download links; empty uses the request host.
	PublicURL string
	Log       logrus.FieldLogger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	s := newServer(d)
	r.Use(RequestLogger(s.log))

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/series", seriesHandler)
		api.GET("/card-back", s.cardBackHandler)
		api.POST("/stylize", RateLimit(d.Limiter), s.stylizeHandler)
		api.POST("/cards", s.renderHandler)
		api.POST("/cards/export", s.exportHandler)
		api.GET("/cards", s.listHandler)
		api.GET("/cards/:id", s.getHandler)
		api.GET("/cards/:id/qr", s.qrHandler)
		api.DELETE("/cards/:id", s.deleteHandler)
	}
}
