package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/ysmood/gson"
)

// PageMap represents the analyzed structure of a web page
type PageMap struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Fields     []Field   `json:"elements"`
	Navigation []NavItem `json:"navigation"`
	IsSPA      bool      `json:"isSPA"`
}

// Field describes an interactive element found on the page
type Field struct {
	Selector    string `json:"selector"`
	Type        string `json:"type"` // button, input type, link, select, checkbox, radio
	Text        string `json:"text,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
}

// NavItem represents a navigation link
type NavItem struct {
	Selector string `json:"selector"`
	Text     string `json:"text"`
	Href     string `json:"href"`
}

// Snapshot extracts a fresh PageMap from the current page state.
// Angular/React pages render late, so it waits for interactive elements first.
func (b *Browser) Snapshot(ctx context.Context) (*PageMap, error) {
	page := b.page.Context(ctx)

	if err := page.Timeout(b.timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}

	// Don't hang on persistent connections
	page.Timeout(5*time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	isSPA, err := evalJSON(page, detectSPAScript)
	if err != nil {
		return nil, err
	}
	if isSPA.Bool() {
		waitForInteractiveElements(page, 5*time.Second)
	}

	info, err := page.Info()
	if err != nil {
		return nil, err
	}

	fields, err := evalJSON(page, extractFieldsScript)
	if err != nil {
		return nil, err
	}
	nav, err := evalJSON(page, extractNavigationScript)
	if err != nil {
		return nil, err
	}

	pm := &PageMap{
		URL:   info.URL,
		Title: info.Title,
		IsSPA: isSPA.Bool(),
	}
	for _, v := range fields.Arr() {
		pm.Fields = append(pm.Fields, Field{
			Selector:    v.Get("selector").Str(),
			Type:        v.Get("type").Str(),
			Text:        v.Get("text").Str(),
			Placeholder: v.Get("placeholder").Str(),
			Name:        v.Get("name").Str(),
			ID:          v.Get("id").Str(),
		})
	}
	for _, v := range nav.Arr() {
		pm.Navigation = append(pm.Navigation, NavItem{
			Selector: v.Get("selector").Str(),
			Text:     v.Get("text").Str(),
			Href:     v.Get("href").Str(),
		})
	}
	return pm, nil
}

func evalJSON(page *rod.Page, js string) (gson.JSON, error) {
	res, err := page.Eval(js)
	if err != nil {
		return gson.New(nil), fmt.Errorf("page script failed: %w", err)
	}
	return res.Value, nil
}

// waitForInteractiveElements polls until interactive elements appear or timeout
func waitForInteractiveElements(page *rod.Page, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	checkInterval := 200 * time.Millisecond

	for time.Now().Before(deadline) {
		count, err := evalJSON(page, countVisibleScript)
		if err == nil && count.Int() > 0 {
			// Wait a tiny bit more for any final renders
			time.Sleep(300 * time.Millisecond)
			return
		}
		time.Sleep(checkInterval)
	}
}

const countVisibleScript = `() => {
	let visible = 0;
	document.querySelectorAll('button, [role="button"], input:not([type="hidden"]), textarea, a[href]')
		.forEach(el => { if (el.offsetParent) visible++; });
	return visible;
}`

const detectSPAScript = `() => {
	if (window.ng || document.querySelector('[ng-version]') || document.querySelector('app-root')) return true;
	if (window.__REACT_DEVTOOLS_GLOBAL_HOOK__ || document.querySelector('[data-reactroot]') || document.querySelector('#__next')) return true;
	if (window.__VUE__ || document.querySelector('[data-v-]')) return true;
	return false;
}`

const extractFieldsScript = `() => {
	const fields = [];
	const seen = new Set();

	function validIdent(s) {
		return !!s && !/^-?[0-9]/.test(s) && !/[.:#\[\]()>~+*\/\\]/.test(s);
	}

	function selectorFor(el) {
		if (el.id && validIdent(el.id)) return '#' + el.id;
		const fc = el.getAttribute('formcontrolname');
		if (fc) return el.tagName.toLowerCase() + "[formControlName='" + fc + "']";
		if (el.name) return '[name="' + el.name + '"]';
		if (el.className && typeof el.className === 'string') {
			const classes = el.className.trim().split(/\s+/).filter(validIdent).slice(0, 2);
			if (classes.length > 0) {
				const sel = el.tagName.toLowerCase() + '.' + classes.join('.');
				try {
					if (document.querySelectorAll(sel).length === 1) return sel;
				} catch (e) {}
			}
		}
		const parent = el.parentElement;
		if (parent) {
			const index = Array.from(parent.children).indexOf(el) + 1;
			return selectorFor(parent) + ' > ' + el.tagName.toLowerCase() + ':nth-child(' + index + ')';
		}
		return el.tagName.toLowerCase();
	}

	function add(el, type, extra) {
		if (!el.offsetParent) return;
		const selector = selectorFor(el);
		if (seen.has(selector)) return;
		seen.add(selector);
		fields.push(Object.assign({ selector, type, id: el.id || undefined, name: el.name || undefined }, extra));
	}

	document.querySelectorAll('button, [role="button"], input[type="submit"], input[type="button"]')
		.forEach(el => add(el, 'button', { text: (el.textContent || el.value || '').trim().slice(0, 50) }));
	document.querySelectorAll('input:not([type="hidden"]):not([type="submit"]):not([type="button"]), textarea')
		.forEach(el => add(el, el.type || 'text', { placeholder: el.placeholder || undefined }));
	document.querySelectorAll('a[href]').forEach(el => {
		const href = el.getAttribute('href');
		if (href.startsWith('#') || href.startsWith('javascript:')) return;
		add(el, 'link', { text: (el.textContent || '').trim().slice(0, 50) });
	});
	document.querySelectorAll('select').forEach(el => add(el, 'select', {}));

	return fields;
}`

const extractNavigationScript = `() => {
	const items = [];
	const seen = new Set();
	document.querySelectorAll('nav a, header a, [role="navigation"] a').forEach(el => {
		if (!el.offsetParent) return;
		const href = el.getAttribute('href') || el.getAttribute('routerlink');
		if (!href || href === '#' || href.startsWith('javascript:') || seen.has(href)) return;
		seen.add(href);
		items.push({
			selector: el.id ? '#' + el.id : 'a[href="' + href + '"]',
			text: (el.textContent || '').trim().slice(0, 30),
			href: href
		});
	});
	return items;
}`
