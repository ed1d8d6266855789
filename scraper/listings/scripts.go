package listings

import "fmt"

// cardScript collects up to limit listing cards. It prefers schema.org
// listing markup and falls back to any link that looks like a listing.
func cardScript(limit int) string {
	return fmt.Sprintf(`
(function() {
	var limit = %d;
	var results = [];
	var seen = {};
	function text(root, sels) {
		for (var i = 0; i < sels.length; i++) {
			var el = root.querySelector(sels[i]);
			if (el && el.innerText.trim()) return el.innerText.trim();
		}
		return '';
	}
	var cards = document.querySelectorAll(
		'[itemtype*="RealEstateListing"], [itemtype*="Residence"], [data-testid*="listing-card"], article');
	for (var i = 0; i < cards.length && results.length < limit; i++) {
		var c = cards[i];
		var link = c.querySelector('a[href]');
		if (!link || seen[link.href]) continue;
		seen[link.href] = true;
		results.push({
			title:    text(c, ['[itemprop="name"]', 'h2', 'h3', '[class*="title"]']) || 'N/A',
			price:    text(c, ['[itemprop="price"]', '[class*="price"]']) || 'N/A',
			location: text(c, ['[itemprop="address"]', 'address', '[class*="address"]', '[class*="location"]']) || 'N/A',
			url:      link.href
		});
	}
	return results;
})()`, limit)
}

const nextPageScript = `
(function() {
	var el = document.querySelector('a[rel="next"]') ||
	         document.querySelector('a[aria-label="Next"]') ||
	         document.querySelector('[data-testid="pagination-next-button"]');
	return el && el.href ? el.href : '';
})()`

const detailScript = `
(function() {
	function text(sels) {
		for (var i = 0; i < sels.length; i++) {
			var el = document.querySelector(sels[i]);
			if (el && el.innerText.trim()) return el.innerText.trim();
		}
		return '';
	}
	var desc = text(['[itemprop="description"]', '[class*="description"]', 'main p']);
	return {
		title:       text(['h1', '[itemprop="name"]']),
		price:       text(['[itemprop="price"]', '[class*="price"]']),
		location:    text(['[itemprop="address"]', 'address', '[class*="address"]']),
		description: desc.substring(0, 500)
	};
})()`
