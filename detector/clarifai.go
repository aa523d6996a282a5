// Package detector wraps the Clarifai face-detection service. The
// service is an opaque external collaborator; this adapter translates an
// image URL into a model call and normalizes the response into bounding
// boxes.
package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/config"
)

// Face-detection model pinned to a known version.
const (
	modelID        = "face-detection"
	modelVersionID = "6dc7e46bc9124c5c8824be4822abe105"

	// Clarifai's success status code.
	statusSuccess = 10000
)

// BoundingBox is one detected face region. Coordinates are fractions of
// the image dimensions, serialized with three decimal places as the
// frontend expects.
type BoundingBox struct {
	Value     float64 `json:"value"`
	TopRow    string  `json:"topRow"`
	LeftCol   string  `json:"leftCol"`
	BottomRow string  `json:"bottomRow"`
	RightCol  string  `json:"rightCol"`
}

// Detector is the boundary the request pipeline depends on.
type Detector interface {
	Detect(ctx context.Context, imageURL string) ([]BoundingBox, error)
}

// ClarifaiClient calls the Clarifai REST API with a bounded timeout.
type ClarifaiClient struct {
	httpClient *http.Client
	baseURL    string
	pat        string
	userID     string
	appID      string
}

// NewClarifaiClient builds the adapter from deployment configuration.
func NewClarifaiClient(cfg config.Clarifai, timeout time.Duration) *ClarifaiClient {
	if timeout <= 0 {
		timeout = config.DefaultDetectorTimeout
	}
	return &ClarifaiClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		pat:        cfg.PAT,
		userID:     cfg.UserID,
		appID:      cfg.AppID,
	}
}

type outputsRequest struct {
	UserAppID userAppID `json:"user_app_id"`
	Inputs    []input   `json:"inputs"`
}

type userAppID struct {
	UserID string `json:"user_id"`
	AppID  string `json:"app_id"`
}

type input struct {
	Data inputData `json:"data"`
}

type inputData struct {
	Image inputImage `json:"image"`
}

type inputImage struct {
	URL string `json:"url"`
}

type outputsResponse struct {
	Status  apiStatus `json:"status"`
	Outputs []output  `json:"outputs"`
}

type apiStatus struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

type output struct {
	Status apiStatus  `json:"status"`
	Data   outputData `json:"data"`
}

type outputData struct {
	Regions []region `json:"regions"`
}

type region struct {
	RegionInfo regionInfo `json:"region_info"`
	Value      float64    `json:"value"`
}

type regionInfo struct {
	BoundingBox rawBoundingBox `json:"bounding_box"`
}

type rawBoundingBox struct {
	TopRow    float64 `json:"top_row"`
	LeftCol   float64 `json:"left_col"`
	BottomRow float64 `json:"bottom_row"`
	RightCol  float64 `json:"right_col"`
}

// Detect sends the image URL to the face-detection model and returns the
// normalized bounding boxes. An empty region set is a client error, not
// an empty success.
func (c *ClarifaiClient) Detect(ctx context.Context, imageURL string) ([]BoundingBox, error) {
	reqBody := outputsRequest{
		UserAppID: userAppID{UserID: c.userID, AppID: c.appID},
		Inputs:    []input{{Data: inputData{Image: inputImage{URL: imageURL}}}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, apperrors.Internal("Error processing image request")
	}

	url := fmt.Sprintf("%s/v2/models/%s/versions/%s/outputs", c.baseURL, modelID, modelVersionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Internal("Error processing image request")
	}
	req.Header.Set("Authorization", "Key "+c.pat)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("Error processing image: %v", err))
	}
	defer resp.Body.Close()

	var parsed outputsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.Internal("Error processing image: invalid response")
	}

	if parsed.Status.Code != statusSuccess {
		return nil, apperrors.Internal(fmt.Sprintf("Post model outputs failed: %s", parsed.Status.Description))
	}

	if len(parsed.Outputs) == 0 || len(parsed.Outputs[0].Data.Regions) == 0 {
		return nil, apperrors.Validation("No faces detected in the image")
	}

	regions := parsed.Outputs[0].Data.Regions
	boxes := make([]BoundingBox, 0, len(regions))
	for _, r := range regions {
		bb := r.RegionInfo.BoundingBox
		boxes = append(boxes, BoundingBox{
			Value:     r.Value,
			TopRow:    formatCoord(bb.TopRow),
			LeftCol:   formatCoord(bb.LeftCol),
			BottomRow: formatCoord(bb.BottomRow),
			RightCol:  formatCoord(bb.RightCol),
		})
	}

	return boxes, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
