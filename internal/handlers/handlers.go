package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/encoder"
	"github.com/cristianadrielbraun/qrstyle/internal/render"
	"github.com/cristianadrielbraun/qrstyle/web/components"
	"github.com/cristianadrielbraun/qrstyle/web/pages"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg      config.Config
	encoders map[string]encoder.Encoder
}

// New returns a Handler for cfg.
func New(cfg config.Config) *Handler {
	h := &Handler{cfg: cfg, encoders: make(map[string]encoder.Encoder)}
	for _, name := range encoder.Names() {
		enc, err := encoder.New(name)
		if err != nil {
			log.Printf("[QR] encoder %s unavailable: %v", name, err)
			continue
		}
		h.encoders[name] = enc
	}
	return h
}

// Register mounts the API and page routes on r.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.QRCodeHandler)
		api.GET("/qr/info", h.InfoHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
	r.GET("/", h.HomePage)
	r.GET("/sitemap.xml", h.SitemapXML)
}

// HomePage renders the options form seeded with the API defaults.
func (h *Handler) HomePage(c *gin.Context) {
	req := encoder.DefaultRequest("")
	rc := render.DefaultRenderConfig()
	lo := render.DefaultLogoOptions()
	d := components.FormDefaults{
		ECL:            req.Level.String(),
		MinVersion:     req.MinVersion,
		MaxVersion:     req.MaxVersion,
		Mask:           "auto",
		BoostECL:       req.BoostECL,
		ModuleSize:     rc.ModuleSize,
		Border:         rc.Border,
		Dark:           rc.Dark.Hex(),
		Light:          rc.Light.Hex(),
		LogoSize:       int(lo.SizeRatio * 100),
		LogoShape:      lo.Shape.String(),
		LogoBackground: lo.Background.String(),
		Encoder:        h.cfg.Encoder,
		Encoders:       encoder.Names(),
		MaxLogoBytes:   h.cfg.MaxLogoBytes,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(d).Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
	}
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost"+h.cfg.Addr || host == "127.0.0.1"+h.cfg.Addr) {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}
