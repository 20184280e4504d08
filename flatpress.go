// Package flatpress is a small personal blog served from a directory of JSON
// files. Visitors read posts; a single admin logs in to create and delete
// them.
//
// Templates are supplied through ViewFuncs; DefaultViews returns the
// components from the views package.
package flatpress

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/flatpress/content"
	"github.com/eringen/flatpress/gate"
	"github.com/eringen/flatpress/views"
)

// ViewFuncs holds the components the handlers render. Any nil field falls
// back to the matching component in DefaultViews.
type ViewFuncs struct {
	Home        func(views.HomePage) templ.Component
	Article     func(views.ArticlePage) templ.Component
	Login       func(views.LoginPage) templ.Component
	Admin       func(views.AdminPage) templ.Component
	NewPost     func(views.NewPostPage) templ.Component
	NotFound    func(views.ErrorPage) templ.Component
	ServerError func(views.ErrorPage) templ.Component
}

// DefaultViews returns the built-in components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Article:     views.Article,
		Login:       views.Login,
		Admin:       views.Admin,
		NewPost:     views.NewPost,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fill() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Article == nil {
		v.Article = d.Article
	}
	if v.Login == nil {
		v.Login = d.Login
	}
	if v.Admin == nil {
		v.Admin = d.Admin
	}
	if v.NewPost == nil {
		v.NewPost = d.NewPost
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App wires the content store, the session gate, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *content.Store
	Gate   *gate.Gate
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
}

// New opens the content directory and builds a ready-to-serve App.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	v.fill()

	store, err := content.Open(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("flatpress: open content: %w", err)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Store:  store,
		Gate: gate.New(
			gate.NewTable(cfg.SessionTTL),
			gate.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
			gate.WithSessionName(sessionName),
			gate.WithLoginPath("/login"),
		),
		Views:        v,
		loginLimiter: NewLoginLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(cfg.logLevel())

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Start serves HTTP on the configured port until the server is closed.
func (a *App) Start() error {
	a.Echo.Logger.Infof("serving %s from %s on %s", a.Config.Name, a.Store.Dir(), a.Config.Addr())
	if err := a.Echo.Start(a.Config.Addr()); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the HTTP server.
func (a *App) Close() error {
	return a.Echo.Close()
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/flatpress.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/data", handleAPIData)
	e.GET("/api/posts", a.handleAPIPosts)

	// Session
	e.GET("/login", a.handleLoginPage)
	e.POST("/login", a.handleLogin)
	e.POST("/logout", a.handleLogout)

	// Admin routes; anonymous clients are sent to /login.
	admin := e.Group("/admin", a.Gate.Require)
	admin.GET("", a.handleAdmin)
	admin.GET("/", a.handleAdmin)
	admin.GET("/new", a.handleAdminNew)
	admin.POST("/posts", a.handleAdminCreate)
	admin.POST("/posts/:slug/delete", a.handleAdminDelete)
	admin.DELETE("/posts/:slug", a.handleAdminDelete)
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
