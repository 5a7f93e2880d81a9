package chromedp_fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// jsCall substitutes a JSON-encoded argument into a JS template.
func jsCall(tmpl, arg string) string {
	return fmt.Sprintf(tmpl, arg)
}

// consentClickTimeout bounds each individual click attempt; most selectors
// will simply not exist on a given page.
const consentClickTimeout = 2500 * time.Millisecond

// consentSettleDelay gives the page a moment to remove its overlay after a
// successful consent action.
const consentSettleDelay = 800 * time.Millisecond

// Known consent-widget accept buttons (OneTrust, Cookiebot, cookieconsent,
// assorted theme variants).
var consentSelectors = []string{
	"#onetrust-accept-btn-handler",
	"button#acceptCookies",
	"button#cookie-action-accept",
	".onetrust-close-btn-handler",
	".onetrust-accept-btn-handler",
	".cn-accept-cookie",
	".cc-btn.cc-allow",
	".cookie-accept",
	".cookies-accept",
	".cookie-consent__button",
	".accept-all",
	".js-accept-cookies",
	".accept-cookies",
	"button[data-testid='accept']",
	"button[data-consent='accept']",
}

// Visible button labels tried when no known selector matches.
var consentButtonTexts = []string{
	"Accept all", "Accept all cookies", "Accept cookies", "Accept",
	"Agree", "I agree", "Allow all", "Allow cookies", "Yes, I agree",
	"Got it", "OK", "Continue",
}

// Consent cookie / storage flags that common frameworks respect.
// Best-effort only.
var consentScripts = []string{
	`document.cookie = 'OptanonConsent=true; path=/; max-age=31536000';`,
	`document.cookie = 'CookieConsent=true; path=/; max-age=31536000';`,
	`localStorage.setItem('cookieConsent', 'true');`,
	`localStorage.setItem('acceptCookies', 'true');`,
	`sessionStorage.setItem('cookieConsent', 'true');`,
	`document.dispatchEvent(new Event('cookieconsent:accept'));`,
}

// clickByTextJS clicks the first visible button-like element whose label
// matches one of the wanted strings. Returns true if something was clicked.
const clickByTextJS = `(wanted => {
	const candidates = document.querySelectorAll(
		"button, a, [role='button'], input[type=button], input[type=submit]");
	for (const text of wanted) {
		for (const el of candidates) {
			const label = (el.innerText || el.value || '').trim();
			if (label.toLowerCase() === text.toLowerCase() && el.offsetParent !== null) {
				el.click();
				return true;
			}
		}
	}
	return false;
})(%s)`

// hideOverlaysJS hides cookie overlays and removes the ones covering most of
// the viewport. Conservative: vital content is never touched.
const hideOverlaysJS = `(selectors => {
	let touched = 0;
	for (const sel of selectors) {
		try {
			document.querySelectorAll(sel).forEach(el => {
				el.style.pointerEvents = 'none';
				el.style.visibility = 'hidden';
				el.style.opacity = '0';
				const rect = el.getBoundingClientRect && el.getBoundingClientRect();
				if (rect && (rect.width >= window.innerWidth * 0.6 || rect.height >= window.innerHeight * 0.6)) {
					el.remove();
				}
				touched++;
			});
		} catch (e) {}
	}
	return touched;
})(%s)`

var overlaySelectors = []string{
	".cookie-banner", ".cookie-consent", "#onetrust-banner-sdk",
	"#cookie-consent", ".eu-cookie-compliance", ".cc-window", ".cc-banner",
	".cookieNotice", ".js-cookie-consent", ".cookieModal", ".cookie-popup",
	"[aria-label*='cookie']",
}

// dismissConsentBanners orchestrates the banner strategies in order of
// reliability: known selectors, visible button text, consent flags, overlay
// removal. Every step is best-effort; the action itself never fails.
func dismissConsentBanners() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, sel := range consentSelectors {
			if clickFirstVisible(ctx, sel) {
				slog.Debug("Clicked consent selector", "selector", sel)
				return sleepCtx(ctx, consentSettleDelay)
			}
		}

		if clickByVisibleText(ctx, consentButtonTexts) {
			return sleepCtx(ctx, consentSettleDelay)
		}

		for _, script := range consentScripts {
			_ = chromedp.Evaluate(script, nil).Do(ctx)
		}

		hideOverlays(ctx)
		return nil
	})
}

// clickFirstVisible attempts to click a selector if it is visible, giving up
// quickly when the element is absent.
func clickFirstVisible(ctx context.Context, sel string) bool {
	clickCtx, cancel := context.WithTimeout(ctx, consentClickTimeout)
	defer cancel()
	err := chromedp.Click(sel, chromedp.NodeVisible, chromedp.ByQuery).Do(clickCtx)
	return err == nil
}

func clickByVisibleText(ctx context.Context, texts []string) bool {
	wanted, err := json.Marshal(texts)
	if err != nil {
		return false
	}
	var clicked bool
	if err := chromedp.Evaluate(jsCall(clickByTextJS, string(wanted)), &clicked).Do(ctx); err != nil {
		return false
	}
	if clicked {
		slog.Debug("Clicked consent button by visible text")
	}
	return clicked
}

func hideOverlays(ctx context.Context) {
	selectors, err := json.Marshal(overlaySelectors)
	if err != nil {
		return
	}
	var touched int
	if err := chromedp.Evaluate(jsCall(hideOverlaysJS, string(selectors)), &touched).Do(ctx); err != nil {
		return
	}
	if touched > 0 {
		slog.Debug("Hid overlay elements", "count", touched)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
