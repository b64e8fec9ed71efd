package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/review-scraper/internal/entity"
	"github.com/user/review-scraper/internal/repository"
)

// handleArtifactPrefix is the serialization artifact remote-handle captures
// prepend to attribute values. Stripped unconditionally.
const handleArtifactPrefix = "JSHandle:"

const ellipsisMarker = "..."

// DecodeReviews parses the captured listing HTML and decodes every review
// fragment in document order.
func DecodeReviews(listHTML string) ([]entity.Review, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listHTML))
	if err != nil {
		return nil, fmt.Errorf("parse review list: %w", err)
	}

	var (
		reviews   []entity.Review
		decodeErr error
	)
	doc.Find(selReviewFragment).EachWithBreak(func(i int, fragment *goquery.Selection) bool {
		review, err := DecodeReview(fragment)
		if err != nil {
			decodeErr = fmt.Errorf("fragment %d: %w", i, err)
			return false
		}
		reviews = append(reviews, review)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return reviews, nil
}

// DecodeReview maps one review fragment to a Review record.
func DecodeReview(fragment *goquery.Selection) (entity.Review, error) {
	title := fragment.Find(selReviewTitle).First()
	if title.Length() == 0 {
		return entity.Review{}, fmt.Errorf("missing %s element: %w", selReviewTitle, repository.ErrExtractionFailed)
	}

	dateAttr, ok := fragment.Find(selReviewDate).First().Attr("title")
	if !ok {
		return entity.Review{}, fmt.Errorf("missing title attribute on %s: %w", selReviewDate, repository.ErrExtractionFailed)
	}

	rating, err := decodeRating(fragment)
	if err != nil {
		return entity.Review{}, err
	}

	return entity.Review{
		Title:  strings.TrimSpace(title.Text()),
		Date:   strings.TrimPrefix(dateAttr, handleArtifactPrefix),
		Text:   decodeText(fragment),
		Rating: rating,
	}, nil
}

// decodeText merges the truncated visible text with the hidden full-text
// element when one is present: the visible text is cut at its last literal
// ellipsis marker and joined with the hidden text by a single space.
func decodeText(fragment *goquery.Selection) string {
	body := fragment.Find(selReviewText).First()

	visible := body.Clone()
	visible.Find(selReviewHidden).Remove()
	text := strings.TrimSpace(visible.Text())

	hidden := body.Find(selReviewHidden).First()
	if hidden.Length() == 0 {
		return text
	}
	if idx := strings.LastIndex(text, ellipsisMarker); idx >= 0 {
		text = strings.TrimRight(text[:idx], " ")
	}
	return text + " " + strings.TrimSpace(hidden.Text())
}

// decodeRating reads the rating-encoding class token: the token after the
// last space ends in two digits encoding rating*10 (e.g. "bubble_50" -> 5).
func decodeRating(fragment *goquery.Selection) (int, error) {
	class, ok := fragment.Find(selRatingBubble).First().Attr("class")
	if !ok {
		return 0, fmt.Errorf("missing %s element: %w", selRatingBubble, repository.ErrExtractionFailed)
	}

	token := class
	if idx := strings.LastIndex(class, " "); idx >= 0 {
		token = class[idx+1:]
	}
	if len(token) < 2 {
		return 0, fmt.Errorf("malformed rating token %q: %w", token, repository.ErrExtractionFailed)
	}

	n, err := strconv.Atoi(token[len(token)-2:])
	if err != nil {
		return 0, fmt.Errorf("malformed rating token %q: %w", token, repository.ErrExtractionFailed)
	}
	return n / 10, nil
}
