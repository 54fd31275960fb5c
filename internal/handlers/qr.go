package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/internal/encoder"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
)

// LogoWarning is sent in X-QR-Warning when a logo is used without High error
// correction.
const LogoWarning = "Using a logo without 'High' Error Correction may make the QR code unscannable."

// formOverhead is the room left for the non-file form fields of a POST.
const formOverhead = 64 << 10

var (
	errBadRequest    = errors.New("bad request")
	errLogoTooLarge  = errors.New("logo too large")
	errImageTooLarge = errors.New("image too large")
)

// qrRequest holds the options accepted by /api/qr, from the query string or
// a multipart form. Omitted fields take the form defaults.
type qrRequest struct {
	Text           string `form:"text" binding:"required"`
	ECL            string `form:"ecl,default=H"`
	MinVersion     int    `form:"minVersion,default=1" binding:"min=1,max=40"`
	MaxVersion     int    `form:"maxVersion,default=40" binding:"min=1,max=40"`
	Mask           string `form:"mask,default=auto"`
	BoostECL       bool   `form:"boostEcl,default=true"`
	ModuleSize     int    `form:"moduleSize,default=15" binding:"min=2,max=30"`
	Border         int    `form:"border,default=4" binding:"min=1,max=20"`
	Dark           string `form:"dark,default=#000000"`
	Light          string `form:"light,default=#ffffff"`
	LogoSize       int    `form:"logoSize,default=25" binding:"min=5,max=40"`
	LogoShape      string `form:"logoShape,default=square"`
	LogoBackground string `form:"logoBackground,default=solid"`
	LogoBorder     bool   `form:"logoBorder"`
	SmoothEdges    bool   `form:"smoothEdges"`
	Format         string `form:"format,default=png"`
	Encoder        string `form:"encoder"`
	Download       bool   `form:"download"`
}

// qrJob is a parsed and validated request, ready to encode and render.
type qrJob struct {
	enc      encoder.Encoder
	request  encoder.Request
	render   render.RenderConfig
	logo     *render.Logo
	format   render.Format
	download bool
}

func parseMask(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" || s == "-1" {
		return encoder.AutoMask, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 0 || m > 7 {
		return 0, fmt.Errorf("%w: mask must be auto or 0-7 (got %q)", encoder.ErrInvalidRequest, s)
	}
	return m, nil
}

// parseJob binds and validates the request. The logo file is only read when
// withLogo is set.
func (h *Handler) parseJob(c *gin.Context, withLogo bool) (*qrJob, error) {
	var req qrRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}

	level, err := encoder.ParseLevel(req.ECL)
	if err != nil {
		return nil, err
	}
	mask, err := parseMask(req.Mask)
	if err != nil {
		return nil, err
	}
	name := req.Encoder
	if name == "" {
		name = h.cfg.Encoder
	}
	enc, ok := h.encoders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown encoder %q", encoder.ErrInvalidRequest, name)
	}

	dark, err := render.HexToRGB(req.Dark)
	if err != nil {
		return nil, err
	}
	light, err := render.HexToRGB(req.Light)
	if err != nil {
		return nil, err
	}
	shape, err := render.ParseShape(req.LogoShape)
	if err != nil {
		return nil, err
	}
	background, err := render.ParseBackgroundStyle(req.LogoBackground)
	if err != nil {
		return nil, err
	}

	job := &qrJob{
		enc: enc,
		request: encoder.Request{
			Content:    req.Text,
			Level:      level,
			MinVersion: req.MinVersion,
			MaxVersion: req.MaxVersion,
			Mask:       mask,
			BoostECL:   req.BoostECL,
		},
		render: render.RenderConfig{
			ModuleSize: req.ModuleSize,
			Border:     req.Border,
			Light:      light,
			Dark:       dark,
		},
		format:   render.ParseFormat(req.Format),
		download: req.Download,
	}
	if err := job.request.Validate(); err != nil {
		return nil, err
	}

	if withLogo {
		img, err := h.readLogo(c)
		if err != nil {
			return nil, err
		}
		if img != nil {
			job.logo = &render.Logo{
				Image: img,
				Options: render.LogoOptions{
					SizeRatio:   float64(req.LogoSize) / 100,
					Shape:       shape,
					Background:  background,
					Border:      req.LogoBorder,
					SmoothEdges: req.SmoothEdges,
				},
			}
		}
	}
	return job, nil
}

// readLogo returns the uploaded logo, or nil when the request has none.
func (h *Handler) readLogo(c *gin.Context) (image.Image, error) {
	fh, err := c.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read logo: %w", errBadRequest, err)
	}
	if fh.Size > h.cfg.MaxLogoBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", errLogoTooLarge, fh.Size, h.cfg.MaxLogoBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}
	return render.DecodeLogo(data, h.cfg.MaxLogoPixels)
}

// statusFor maps an error to the HTTP status and the message sent to the
// client.
func statusFor(err error) (int, string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, encoder.ErrDataTooLong):
		return http.StatusUnprocessableEntity, encoder.DataTooLongMessage
	case errors.As(err, &maxErr), errors.Is(err, errLogoTooLarge), errors.Is(err, render.ErrLogoTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, errBadRequest),
		errors.Is(err, errImageTooLarge),
		errors.Is(err, encoder.ErrInvalidRequest),
		errors.Is(err, render.ErrInvalidColorFormat),
		errors.Is(err, render.ErrInvalidRenderParameters),
		errors.Is(err, render.ErrUnsupportedLogoFormat):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, fmt.Sprintf("Failed to generate QR code: %v", err)
}

func fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[QR] error: %v", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func setMetadata(c *gin.Context, res encoder.Result) {
	c.Header("X-QR-Version", strconv.Itoa(res.Version))
	c.Header("X-QR-Size", strconv.Itoa(res.Size))
	c.Header("X-QR-ECL", res.Level.String())
	c.Header("X-QR-Mask", strconv.Itoa(res.Mask))
}

// QRCodeHandler encodes the text and returns the styled QR image.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	if c.Request.Method == http.MethodPost {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxLogoBytes+formOverhead)
	}
	job, err := h.parseJob(c, true)
	if err != nil {
		fail(c, err)
		return
	}

	log.Printf("[QR] request start: encoder=%s ecl=%s versions=%d-%d mask=%d format=%s logo=%t",
		job.enc.Name(), job.request.Level, job.request.MinVersion, job.request.MaxVersion, job.request.Mask, job.format, job.logo != nil)

	res, err := job.enc.Encode(job.request)
	if err != nil {
		fail(c, err)
		return
	}
	grid, err := render.NewModuleGrid(res.Modules)
	if err != nil {
		fail(c, err)
		return
	}
	if edge := job.render.ImageEdge(res.Size); edge > h.cfg.MaxImageEdge {
		fail(c, fmt.Errorf("%w: %dpx exceeds the %dpx limit, lower the module size or version", errImageTooLarge, edge, h.cfg.MaxImageEdge))
		return
	}

	img, err := render.Render(grid, job.render, job.logo)
	if err != nil {
		fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Encode(&buf, img, job.format); err != nil {
		fail(c, err)
		return
	}

	setMetadata(c, res)
	if job.logo != nil && job.request.Level != encoder.High {
		c.Header("X-QR-Warning", LogoWarning)
	}
	if job.download {
		c.Header("Content-Disposition", `attachment; filename="custom_qrcode`+job.format.Ext()+`"`)
	}
	if c.Request.Method == http.MethodGet {
		c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	} else {
		c.Header("Cache-Control", "no-store")
	}
	c.Data(http.StatusOK, job.format.ContentType(), buf.Bytes())
	log.Printf("[QR] sent %s version=%d size=%d edge=%d", strings.ToUpper(string(job.format)), res.Version, res.Size, img.Bounds().Dx())
}

// InfoHandler encodes the text and returns only the symbol metadata.
func (h *Handler) InfoHandler(c *gin.Context) {
	job, err := h.parseJob(c, false)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := job.enc.Encode(job.request)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"encoder":   job.enc.Name(),
		"version":   res.Version,
		"size":      res.Size,
		"ecl":       res.Level.String(),
		"mask":      res.Mask,
		"imageEdge": job.render.ImageEdge(res.Size),
	})
}
