// internal/models/sitemap.go
package models

import "encoding/xml"

// SitemapIndex represents a <sitemapindex> document listing child sitemaps.
type SitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Sitemaps []SitemapEntry `xml:"sitemap"`
}

// SitemapEntry is a single child sitemap reference.
type SitemapEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap represents the structure of an XML sitemap.
type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Locations returns every child sitemap location in document order.
func (s *SitemapIndex) Locations() []string {
	locs := make([]string, 0, len(s.Sitemaps))
	for _, e := range s.Sitemaps {
		locs = append(locs, e.Loc)
	}
	return locs
}

// Locations returns every page location in document order.
func (s *Sitemap) Locations() []string {
	locs := make([]string, 0, len(s.URLs))
	for _, u := range s.URLs {
		locs = append(locs, u.Loc)
	}
	return locs
}
