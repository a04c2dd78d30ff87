package document

// Kind enumerates the block types the extractor understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindParagraph
	KindHeading1
	KindHeading2
	KindHeading3
	KindBulletedListItem
	KindNumberedListItem
	KindToDo
	KindToggle
	KindQuote
	KindCallout
	KindTemplate
	KindCode
	KindEquation
	KindBookmark
	KindEmbed
	KindLinkPreview
	KindImage
	KindVideo
	KindFile
	KindPDF
	KindAudio
	KindChildPage
	KindChildDatabase
	KindTable
	KindTableRow
	KindDivider
)

var kindNames = map[string]Kind{
	"paragraph":          KindParagraph,
	"heading_1":          KindHeading1,
	"heading_2":          KindHeading2,
	"heading_3":          KindHeading3,
	"bulleted_list_item": KindBulletedListItem,
	"numbered_list_item": KindNumberedListItem,
	"to_do":              KindToDo,
	"toggle":             KindToggle,
	"quote":              KindQuote,
	"callout":            KindCallout,
	"template":           KindTemplate,
	"code":               KindCode,
	"equation":           KindEquation,
	"bookmark":           KindBookmark,
	"embed":              KindEmbed,
	"link_preview":       KindLinkPreview,
	"image":              KindImage,
	"video":              KindVideo,
	"file":               KindFile,
	"pdf":                KindPDF,
	"audio":              KindAudio,
	"child_page":         KindChildPage,
	"child_database":     KindChildDatabase,
	"table":              KindTable,
	"table_row":          KindTableRow,
	"divider":            KindDivider,
}

// ParseKind maps a raw type tag to a Kind. Unrecognized tags yield KindUnknown.
func ParseKind(tag string) Kind {
	if k, ok := kindNames[tag]; ok {
		return k
	}
	return KindUnknown
}

// String returns the raw type tag for k, or "unknown".
func (k Kind) String() string {
	for name, v := range kindNames {
		if v == k {
			return name
		}
	}
	return "unknown"
}

// IsRichText reports whether blocks of this kind carry their text as rich-text runs.
func (k Kind) IsRichText() bool {
	switch k {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3,
		KindBulletedListItem, KindNumberedListItem, KindToDo, KindToggle,
		KindQuote, KindCallout, KindTemplate:
		return true
	default:
		return false
	}
}

// IsMedia reports whether blocks of this kind reference an uploaded or external file.
func (k Kind) IsMedia() bool {
	switch k {
	case KindImage, KindVideo, KindFile, KindPDF, KindAudio:
		return true
	default:
		return false
	}
}
