// Package portal drives the vendor's firmware download portal in a
// real browser and turns result rows into raw records for ingestion.
//
// The portal is a JavaScript-rendered catalog: a search box, result
// rows that expand on click, and an agreement modal that reveals the
// actual CDN download link. The crawl is strictly sequential: click,
// wait, read. Row parsing is split out into pure functions so it can
// be tested without a browser.
package portal
