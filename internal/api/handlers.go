package api

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/cardmaker/internal/assets"
	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/gallery"
	imagepkg "github.com/youruser/cardmaker/internal/image"
	"github.com/youruser/cardmaker/internal/stylize"
)

const (
	msgMissingPhoto   = "Missing photo in request body"
	msgUnreadable     = "Could not read image. Try a JPEG or PNG photo."
	msgRateLimited    = "Too many stylization requests. Please wait a minute and try again."
	msgNoStylizer     = "Stylization is not available right now."
	msgStylizeFailed  = "Stylization failed. Please try again."
	msgUnknownSeries  = "unknown series"
	msgCardNotFound   = "card not found"
	msgNoGallery      = "card export is not enabled"
	msgRenderFailed   = "Could not create your card. Please try again."
	defaultListLimit  = 50
	defaultQRSize     = 400
	stylizedImageName = "photo.jpg"
)

// httpError carries the status and message a handler should answer with.
type httpError struct {
	status int
	msg    string
	err    error
}

func (e *httpError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *httpError) Unwrap() error { return e.err }

func badRequest(msg string) error {
	return &httpError{status: http.StatusBadRequest, msg: msg}
}

type server struct {
	Deps
	log logrus.FieldLogger
}

func newServer(d Deps) *server {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &server{Deps: d, log: log.WithField("component", "API")}
}

func (s *server) logFor(c *gin.Context) logrus.FieldLogger {
	return s.log.WithField("request_id", c.GetString(requestIDKey))
}

// fail answers with the status err maps to.
func (s *server) fail(c *gin.Context, err error) {
	var herr *httpError
	var verr *cards.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card text", "fields": verr.Fields})
	case errors.As(err, &herr):
		if herr.status >= 500 {
			s.logFor(c).WithError(err).Error(herr.msg)
		}
		c.JSON(herr.status, gin.H{"error": herr.msg})
	case errors.Is(err, assets.ErrUnknownSeries):
		c.JSON(http.StatusNotFound, gin.H{"error": msgUnknownSeries})
	case errors.Is(err, gallery.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgCardNotFound})
	default:
		s.logFor(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgRenderFailed})
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func seriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"default": cards.DefaultSeries, "series": cards.AllSeries})
}

func (s *server) cardBackHandler(c *gin.Context) {
	img, err := s.Assets.CardBack()
	if err != nil {
		s.fail(c, err)
		return
	}
	writePNG(c, http.StatusOK, img)
}

// stylizeHandler answers {imageBase64} holding the stylized photo cropped
// to the portrait window, as a JPEG.
func (s *server) stylizeHandler(c *gin.Context) {
	photo, name, err := readPhoto(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if _, err := decodePhoto(photo); err != nil {
		s.fail(c, err)
		return
	}
	img, err := s.stylizePhoto(c, photo, name)
	if err != nil {
		s.fail(c, err)
		return
	}
	out, err := imagepkg.EncodeJPEG(imagepkg.CropToPortrait(img), imagepkg.PortraitJPEGQuality)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageBase64": base64.StdEncoding.EncodeToString(out)})
}

func (s *server) renderHandler(c *gin.Context) {
	card, _, _, err := s.buildCard(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	writePNG(c, http.StatusOK, card)
}

func (s *server) exportHandler(c *gin.Context) {
	if s.Gallery == nil {
		s.fail(c, &httpError{status: http.StatusNotImplemented, msg: msgNoGallery})
		return
	}
	card, form, series, err := s.buildCard(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		s.fail(c, err)
		return
	}
	saved, err := s.Gallery.Save(c.Request.Context(), gallery.Card{Title: form.Title, Series: series, PNG: buf.Bytes()})
	if err != nil {
		s.fail(c, err)
		return
	}
	url := s.cardURL(c, saved.ID)
	c.JSON(http.StatusCreated, gin.H{"id": saved.ID, "url": url, "qrUrl": url + "/qr"})
}

func (s *server) listHandler(c *gin.Context) {
	if s.Gallery == nil {
		s.fail(c, &httpError{status: http.StatusNotImplemented, msg: msgNoGallery})
		return
	}
	limit := defaultListLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	list, err := s.Gallery.List(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "cards": list})
}

func (s *server) getHandler(c *gin.Context) {
	if s.Gallery == nil {
		s.fail(c, &httpError{status: http.StatusNotImplemented, msg: msgNoGallery})
		return
	}
	card, err := s.Gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if c.Query("download") != "" {
		c.Header("Content-Disposition", `attachment; filename="`+downloadName(card)+`"`)
	}
	c.Data(http.StatusOK, "image/png", card.PNG)
}

// qrHandler returns a QR code PNG linking to the card's download URL.
func (s *server) qrHandler(c *gin.Context) {
	if s.Gallery == nil {
		s.fail(c, &httpError{status: http.StatusNotImplemented, msg: msgNoGallery})
		return
	}
	card, err := s.Gallery.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	size := defaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(s.cardURL(c, card.ID)+"?download=1", size)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *server) deleteHandler(c *gin.Context) {
	if s.Gallery == nil {
		s.fail(c, &httpError{status: http.StatusNotImplemented, msg: msgNoGallery})
		return
	}
	if err := s.Gallery.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// buildCard runs the whole card pipeline for a multipart request: text
// validation, series lookup, photo checks, optional stylization, portrait
// crop and composition.
func (s *server) buildCard(c *gin.Context) (*image.NRGBA, cards.FormData, cards.SeriesID, error) {
	form := cards.FormData{
		Title:   c.PostForm("title"),
		Tagline: c.PostForm("tagline"),
		FunFact: c.PostForm("funFact"),
		ProTip:  c.PostForm("proTip"),
	}
	if err := cards.ValidateForm(form, s.Limits, s.Blocked); err != nil {
		return nil, form, "", err
	}
	series := cards.SeriesID(c.DefaultPostForm("series", string(cards.DefaultSeries)))
	if _, ok := cards.LookupSeries(series); !ok {
		return nil, form, series, &httpError{status: http.StatusNotFound, msg: msgUnknownSeries}
	}
	stylize, _ := strconv.ParseBool(c.DefaultPostForm("stylize", "false"))

	photo, name, err := readPhoto(c)
	if err != nil {
		return nil, form, series, err
	}
	img, err := decodePhoto(photo)
	if err != nil {
		return nil, form, series, err
	}
	if stylize {
		if !s.Limiter.Allow(c.ClientIP()) {
			return nil, form, series, &httpError{status: http.StatusTooManyRequests, msg: msgRateLimited}
		}
		if img, err = s.stylizePhoto(c, photo, name); err != nil {
			return nil, form, series, err
		}
	}
	portrait, err := imagepkg.EncodeJPEG(imagepkg.CropToPortrait(img), imagepkg.PortraitJPEGQuality)
	if err != nil {
		return nil, form, series, err
	}
	frame, err := s.Assets.Frame(series)
	if err != nil {
		return nil, form, series, err
	}
	card, err := s.Renderer.RenderCard(imagepkg.RenderInput{Frame: frame, Portrait: portrait, Form: form})
	if err != nil {
		return nil, form, series, err
	}
	s.logFor(c).WithFields(logrus.Fields{"series": series, "stylized": stylize}).Info("card rendered")
	return card, form, series, nil
}

func (s *server) stylizePhoto(c *gin.Context, photo []byte, name string) (image.Image, error) {
	if s.Stylizer == nil || !s.Stylizer.Enabled() {
		return nil, &httpError{status: http.StatusServiceUnavailable, msg: msgNoStylizer}
	}
	out, err := s.Stylizer.Stylize(c.Request.Context(), photo, name)
	if err != nil {
		// only the service's own answer is shown; transport errors name internal hosts
		msg := msgStylizeFailed
		var apiErr *stylize.APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Error()
		}
		return nil, &httpError{status: http.StatusBadGateway, msg: msg, err: err}
	}
	img, err := imagepkg.DecodeImage(out)
	if err != nil {
		return nil, &httpError{status: http.StatusBadGateway, msg: "Failed to decode stylized image", err: err}
	}
	return img, nil
}

func readPhoto(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, "", badRequest(msgMissingPhoto)
	}
	if err := imagepkg.ValidateUpload(fh.Header.Get("Content-Type"), fh.Filename, fh.Size); err != nil {
		return nil, "", badRequest(err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	name := fh.Filename
	if name == "" {
		name = stylizedImageName
	}
	return b, name, nil
}

func decodePhoto(photo []byte) (image.Image, error) {
	img, err := imagepkg.DecodeImage(photo)
	if err != nil {
		return nil, badRequest(msgUnreadable)
	}
	b := img.Bounds()
	if err := imagepkg.ValidateDimensions(b.Dx(), b.Dy()); err != nil {
		return nil, badRequest(err.Error())
	}
	return img, nil
}

func (s *server) cardURL(c *gin.Context, id string) string {
	base := strings.TrimRight(s.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/api/cards/" + id
}

func downloadName(card gallery.Card) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, card.Title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "card"
	}
	return slug + ".png"
}

func writePNG(c *gin.Context, status int, img image.Image) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(status, "image/png", buf.Bytes())
}
