package emit

import (
	"fmt"
	"io"

	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/nomenclature"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/shiftstat"
	"github.com/wwPDB/py-wwpdb-utils-nmr-sub012/star"
)

// Style is an output style.
type Style int

const (
	Curator Style = iota
	Community
)

func (s Style) String() string {
	if s == Community {
		return "community"
	}
	return "curator"
}

// ParseStyle parses "curator" or "community".
func ParseStyle(s string) (Style, error) {
	switch s {
	case "curator", "nmr-star", "star":
		return Curator, nil
	case "community", "nef":
		return Community, nil
	}
	return Curator, fmt.Errorf("unknown output style %q", s)
}

// Writer turns lists into STAR documents.
type Writer struct {
	Style Style

	// Identifier of the data block, usually the coordinate entry id.
	EntryID string

	// Converts atom names for community output. Required for Community.
	Normalizer *nomenclature.Normalizer

	// Ambiguity codes of assigned chemical shifts. Optional.
	Stats shiftstat.Stats
}

// Document returns the lists as a STAR document. List ids must be unique.
func (w Writer) Document(lists []*List) (*star.Document, error) {
	seen := make(map[int]bool)
	for _, l := range lists {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate list id %d", l.ID)
		}
		seen[l.ID] = true
	}

	name := w.EntryID
	if len(name) == 0 {
		name = "translated"
	}
	switch w.Style {
	case Community:
		if w.Normalizer == nil {
			return nil, fmt.Errorf("community output needs a normalizer")
		}
		doc := star.NewDocument("nef_" + name)
		meta := doc.Frame("nef_nmr_meta_data", "nef_nmr_meta_data")
		meta.Add("sf_category", "nef_nmr_meta_data")
		meta.Add("sf_framecode", "nef_nmr_meta_data")
		meta.Add("format_name", "nmr_exchange_format")
		meta.Add("format_version", "1.1")
		meta.Add("program_name", "nmr-translate")
		for _, l := range lists {
			addCommunityList(doc, ToCommunity(l, w.Normalizer))
		}
		return doc, nil
	}
	doc := star.NewDocument(name)
	for _, l := range lists {
		addCuratorList(doc, w.EntryID, l, w.Stats)
	}
	return doc, nil
}

// Write writes the lists to out.
func (w Writer) Write(out io.Writer, lists []*List) error {
	doc, err := w.Document(lists)
	if err != nil {
		return err
	}
	return doc.Write(out)
}
