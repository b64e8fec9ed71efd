package usecase

import "time"

// Selectors for the review listing markup. They are specific to one site;
// this is not a general-purpose crawler.
const (
	selConsentAccept = "#_evidon-banner-acceptbutton"
	selAddress       = ".address"
	selLanguageAll   = `input[id^="filters_detail_language_filterLang_ALL"]`

	selReviewList     = "div.listContainer"
	selReviewFragment = "div.review-container"
	selReviewTitle    = ".noQuotes"
	selReviewDate     = ".ratingDate"
	selReviewText     = ".partial_entry"
	selReviewHidden   = ".postSnippet"
	selRatingBubble   = ".ui_bubble_rating"

	selExpandControl  = "span.taLnk.ulBlueLinks"
	selNextPage       = "a.nav.next"
	selLoadingOverlay = "div.loadingWhiteBox"

	disabledMarker = "disabled"
)

// Bounded waits. Expiry is a normal control-flow branch, not an error.
const (
	consentWaitTimeout  = 300 * time.Millisecond
	consentSettleDelay  = 500 * time.Millisecond
	languageWaitTimeout = 1000 * time.Millisecond
	languageSettleDelay = 1000 * time.Millisecond
	loadingWaitTimeout  = 15 * time.Second
)

// Jitter bounds between automation actions.
const (
	expandDelayMin  = 500 * time.Millisecond
	expandDelayMax  = 1500 * time.Millisecond
	advanceDelayMin = 500 * time.Millisecond
	advanceDelayMax = 2000 * time.Millisecond
)

const scrollToBottomScript = `window.scrollTo(0, document.body.scrollHeight);`
