package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxChars bounds extracted text so downstream prompts stay inside
// token budgets.
const DefaultMaxChars = 30000

const truncationNotice = "[Document truncated for analysis efficiency]"

// ExtractText pulls plain text from a PDF on disk, collapsing whitespace
// per page and stopping once maxChars is exceeded.
func ExtractText(path string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer file.Close()

	var parts []string
	chars := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than losing the whole document.
			continue
		}

		clean := strings.Join(strings.Fields(text), " ")
		if clean == "" {
			continue
		}

		parts = append(parts, clean)
		chars += len(clean)
		if chars > maxChars {
			parts = append(parts, truncationNotice)
			break
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no extractable text in PDF")
	}

	return strings.Join(parts, "\n"), nil
}
