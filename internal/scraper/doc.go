// Package scraper provides HTTP fetching and HTML parsing for the FOSDEM
// schedule.
//
// The listing page is parsed positionally: group headers and event anchors
// are located with their byte offsets in the raw document, each event is
// rebuilt from its enclosing table row, and the nearest preceding header
// names its track. Detail pages are parsed with goquery to fill the optional
// abstract, description, video link, chat link, and icon fields. All fetches
// run sequentially with a politeness delay and bounded retry.
package scraper
