package services

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/framescope/internal/core/domain"
	"github.com/custodia-labs/framescope/internal/core/ports/driving"
	"github.com/custodia-labs/framescope/internal/logger"
)

// Ensure QueryRouter implements the interface.
var _ driving.QueryRouter = (*QueryRouter)(nil)

// scrollAroundK is large enough to return every frame of a shot.
const scrollAroundK = 273

// Form field names sent to the hub.
const (
	fieldText             = "text"
	fieldK                = "k"
	fieldVideoFilter      = "video_filter"
	fieldS2TFilter        = "s2t_filter"
	fieldTimeIn           = "time_in"
	fieldTimeOut          = "time_out"
	fieldSkipFrames       = "skip_frames"
	fieldReturnS2T        = "return_s2t"
	fieldReturnObject     = "return_object"
	fieldFrameClassFilter = "frame_class_filter"
	fieldImagePath        = "image_path"
	fieldReturnList       = "return_list"
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// routes maps (model, query type) to hub endpoints.
var routes = map[domain.Model]map[domain.QueryType]string{
	domain.ModelMetaV2: {
		domain.QueryText:     "hub/metaclip_v2_text_search",
		domain.QueryImage:    "hub/metaclip_v2_image_search",
		domain.QueryTemporal: "hub/metaclip_v2_temporal_search",
		domain.QueryScroll:   "hub/metaclip_v2_scroll",
	},
	domain.ModelSiglipV2: {
		domain.QueryText:     "hub/siglip_v2_text_search",
		domain.QueryImage:    "hub/siglip_v2_image_search",
		domain.QueryTemporal: "hub/siglip_v2_temporal_search",
		domain.QueryScroll:   "hub/siglip_v2_scroll",
	},
	domain.ModelMeta: {
		domain.QueryText:     "hub/metaclip_text_search",
		domain.QueryImage:    "hub/metaclip_image_search",
		domain.QueryTemporal: "hub/metaclip_temporal_search",
		domain.QueryScroll:   "hub/metaclip_scroll",
	},
}

// QueryRouter selects the endpoint, effective query type, and model for a query.
// It is stateless.
type QueryRouter struct{}

// NewQueryRouter creates a new query router.
func NewQueryRouter() *QueryRouter {
	return &QueryRouter{}
}

// Route applies the routing rules in order:
//  1. a text query with empty text becomes a scroll query
//  2. a temporal model with a text query becomes a temporal query only for
//     two or more sentences; the prefix is stripped for text queries only
//  3. the (model, type) pair must have an endpoint, so a temporal model
//     with any other query type fails with ErrNoRoute
//  4. image queries need a data URI or URL
//  5. temporal queries ask for list results
func (r *QueryRouter) Route(req domain.SearchRequest) (*domain.RoutedQuery, error) {
	text := strings.TrimSpace(req.Query)
	queryType := req.Type
	model := req.Model

	if queryType == domain.QueryText && text == "" {
		queryType = domain.QueryScroll
	}

	if model.IsTemporal() && queryType == domain.QueryText {
		if CountSentences(text) > 1 {
			queryType = domain.QueryTemporal
		}
		model = model.Base()
	}

	endpoint, err := lookupRoute(model, queryType)
	if err != nil {
		return nil, err
	}

	form := searchForm(text, req.Filters, req.Settings)

	switch queryType {
	case domain.QueryImage:
		image := strings.TrimSpace(req.ImagePath)
		if !isImageReference(image) {
			return nil, domain.ErrImageRequired
		}
		form[fieldImagePath] = image
	case domain.QueryTemporal:
		form[fieldReturnList] = "true"
	}

	logger.Debug("route: %s/%s -> %s/%s (%s)", req.Model, req.Type, model, queryType, endpoint)

	return &domain.RoutedQuery{
		Endpoint: endpoint,
		Type:     queryType,
		Model:    model,
		Form:     form,
	}, nil
}

// ScrollAround builds a scroll query covering the shot that contains frame.
func (r *QueryRouter) ScrollAround(
	frame domain.FrameRecord,
	model domain.Model,
	settings domain.SearchSettings,
) (*domain.RoutedQuery, error) {
	fps := float64(frame.FPS)
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrInvalidFPS, frame.VideoName, frame.KeyframeID)
	}

	model = model.Base()
	endpoint, err := lookupRoute(model, domain.QueryScroll)
	if err != nil {
		return nil, err
	}

	form := map[string]string{
		fieldK:                strconv.Itoa(scrollAroundK),
		fieldVideoFilter:      frame.BaseVideoName(),
		fieldReturnS2T:        strconv.FormatBool(settings.ReturnS2T),
		fieldReturnObject:     strconv.FormatBool(settings.ReturnObject),
		fieldFrameClassFilter: strconv.FormatBool(settings.FrameClassFilter),
		fieldTimeIn:           FrameToTimecode(int(frame.RelatedStartFrame), fps),
		fieldTimeOut:          FrameToTimecode(int(frame.RelatedEndFrame), fps),
	}

	return &domain.RoutedQuery{
		Endpoint: endpoint,
		Type:     domain.QueryScroll,
		Model:    model,
		Form:     form,
	}, nil
}

// CountSentences counts non-blank runs of text ended by '.', '!' or '?'.
func CountSentences(text string) int {
	n := 0
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if strings.TrimSpace(m) != "" {
			n++
		}
	}
	return n
}

// FrameToTimecode converts a frame number to "mm:ss".
func FrameToTimecode(frame int, fps float64) string {
	total := int(math.Floor(float64(frame) / fps))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func lookupRoute(model domain.Model, queryType domain.QueryType) (string, error) {
	endpoint, ok := routes[model][queryType]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", domain.ErrNoRoute, model, queryType)
	}
	return endpoint, nil
}

func searchForm(text string, filters domain.Filters, settings domain.SearchSettings) map[string]string {
	return map[string]string{
		fieldText:             text,
		fieldK:                strconv.Itoa(settings.K),
		fieldVideoFilter:      filters.VideoFilter(),
		fieldS2TFilter:        filters.S2T,
		fieldTimeIn:           filters.TimeIn,
		fieldTimeOut:          filters.TimeOut,
		fieldSkipFrames:       filters.SkipFrames(),
		fieldReturnS2T:        strconv.FormatBool(settings.ReturnS2T),
		fieldReturnObject:     strconv.FormatBool(settings.ReturnObject),
		fieldFrameClassFilter: strconv.FormatBool(settings.FrameClassFilter),
	}
}

func isImageReference(s string) bool {
	if strings.HasPrefix(s, "data:") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
