package domain

import (
	"net/url"
	"strings"
)

// TrustedDomains is the static allow-list of retailers whose links the
// price comparator will accept. Read-only for the lifetime of the process.
var TrustedDomains = []string{
	"amazon.com",
	"walmart.com",
	"target.com",
	"bestbuy.com",
	"homedepot.com",
	"lowes.com",
	"macys.com",
	"nordstrom.com",
	"wayfair.com",
	"ebay.com",
	"costco.com",
	"samsclub.com",
	"etsy.com",
	"shopify.com",
	"nike.com",
	"adidas.com",
	"zappos.com",
	"sephora.com",
	"ulta.com",
	"chewy.com",
	"staples.com",
	"officedepot.com",
	"bhphotovideo.com",
	"newegg.com",
	"kohls.com",
	"jcpenney.com",
	"overstock.com",
	"walgreens.com",
	"cvs.com",
	"riteaid.com",
}

// IsTrustedLink reports whether the link's hostname (minus a leading
// "www.") contains one of the trusted retailer domains. Unparseable links
// are never trusted.
func IsTrustedLink(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Hostname() == "" {
		return false
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	for _, trusted := range TrustedDomains {
		if strings.Contains(host, trusted) {
			return true
		}
	}
	return false
}
