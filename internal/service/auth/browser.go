package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/oshokin/ncm-player/internal/logger"
	"github.com/oshokin/ncm-player/internal/session"
)

const (
	// browserSlowMotionDelay is the delay between browser actions for visibility during debugging.
	browserSlowMotionDelay = 200 * time.Millisecond

	// musicHomeURL is the landing page the cookies are read for.
	musicHomeURL = "https://music.163.com/"

	// musicLoginURL opens the login dialog directly.
	musicLoginURL = "https://music.163.com/#/login"

	// maxLoginWaitTime is the maximum time to wait for user to complete login.
	maxLoginWaitTime = 10 * time.Minute

	// loginPollInterval is the interval for polling the session cookie.
	loginPollInterval = time.Second

	// browserCleanupDelay is the delay to wait for Chrome to release file locks before cleanup.
	browserCleanupDelay = 500 * time.Millisecond
)

// RodBrowser runs the login page in a visible Chrome with stealth patches.
type RodBrowser struct {
	browser *rod.Browser
	page    *rod.Page
	// tempDir stores the temporary profile directory for cleanup.
	tempDir string
	// maxWait bounds the whole login.
	maxWait time.Duration
}

// NewRodBrowser creates and returns a new instance of RodBrowser.
func NewRodBrowser() *RodBrowser {
	return &RodBrowser{maxWait: maxLoginWaitTime}
}

// Login opens the login page, waits until the MUSIC_U cookie appears and returns every cookie of the site.
func (b *RodBrowser) Login(ctx context.Context) ([]session.Cookie, error) {
	if err := b.initBrowser(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}

	defer b.cleanup(ctx)

	return b.waitForUserLogin(ctx)
}

// initBrowser initializes the rod browser instance.
func (b *RodBrowser) initBrowser(ctx context.Context) error {
	logger.Debug(ctx, "Initializing browser")

	// A fresh profile keeps old sessions from leaking into the new one.
	tempDir, err := os.MkdirTemp("", "ncm-auth-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary user data directory: %w", err)
	}

	logger.Debugf(ctx, "Using temporary profile directory: %s", tempDir)

	b.tempDir = tempDir

	l := launcher.New().
		// User needs to see the browser to log in.
		Headless(false).
		UserDataDir(tempDir)

	if chromePath, exists := launcher.LookPath(); exists {
		logger.Debugf(ctx, "Using system Chrome installation at: %s", chromePath)

		l = l.Bin(chromePath)
	} else {
		logger.Debug(ctx, "System Chrome not found, downloading Chromium")
	}

	launcherURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Debugf(ctx, "Browser launched at: %s", launcherURL)

	browserInstance := rod.New().ControlURL(launcherURL)

	// Enable trace and slow motion only in debug mode.
	if logger.IsDebugLevel() {
		browserInstance = browserInstance.
			Trace(true).
			SlowMotion(browserSlowMotionDelay)
	}

	if err = browserInstance.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	b.browser = browserInstance

	page, err := stealth.Page(b.browser)
	if err != nil {
		return fmt.Errorf("failed to open stealth page: %w", err)
	}

	b.page = page

	logger.Debug(ctx, "Browser initialized successfully with stealth mode")

	return nil
}

// pageURL returns the URL of the login page.
// A closed window surfaces as ErrBrowserClosed, whether rod reports it as an error or a panic.
func (b *RodBrowser) pageURL(ctx context.Context) (currentURL string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf(ctx, "Page info panicked: %v", r)

			err = ErrBrowserClosed
		}
	}()

	info, err := b.page.Info()
	if err != nil {
		logger.Debugf(ctx, "Page info failed: %v", err)

		return "", ErrBrowserClosed
	}

	return info.URL, nil
}

// cleanup closes the browser and removes the temporary profile.
func (b *RodBrowser) cleanup(ctx context.Context) {
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			logger.Debugf(ctx, "Browser close error (expected): %v", err)
		}
	}

	if b.tempDir != "" {
		// Give Chrome a moment to release file locks.
		time.Sleep(browserCleanupDelay)

		if err := os.RemoveAll(b.tempDir); err != nil {
			logger.Debugf(ctx, "Could not clean up temp directory %s: %v", b.tempDir, err)
		}
	}
}
