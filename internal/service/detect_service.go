package service

import (
	"context"
	"fmt"
	"strings"

	"go_duduolingo/internal/middleware"
	"go_duduolingo/internal/model"
)

// ObjectDetector は外部の物体検出APIです (detect.Client が実装)
type ObjectDetector interface {
	Enabled() bool
	Detect(ctx context.Context, image []byte, mimeType, object string) ([]model.DetectedObject, error)
}

type DetectService interface {
	// Detect は target のうち最初のカンマ区切り要素を画像中から探します
	Detect(ctx context.Context, target string, image []byte, mimeType string) (*model.DetectResponse, error)
}

type detectService struct {
	detector ObjectDetector
}

func NewDetectService(detector ObjectDetector) DetectService {
	return &detectService{detector: detector}
}

// FirstTarget は "apple, fruit" のような定義文から最初の語を取り出します
func FirstTarget(target string) string {
	first, _, _ := strings.Cut(target, ",")
	return strings.TrimSpace(first)
}

func (s *detectService) Detect(ctx context.Context, target string, image []byte, mimeType string) (*model.DetectResponse, error) {
	label := FirstTarget(target)
	if label == "" {
		return nil, model.NewAppError(model.CodeValidation, "target パラメータは必須です。", "target", model.ErrInvalidInput)
	}
	if len(image) == 0 {
		return nil, model.NewAppError(model.CodeValidation, "画像ファイルは必須です。", "file", model.ErrInvalidInput)
	}
	if s.detector == nil || !s.detector.Enabled() {
		return nil, model.NewAppError(model.CodeFeatureDisabled, "物体検出は設定されていません。", "", model.ErrUnavailable)
	}
	logger := middleware.GetLogger(ctx).With("target", label)

	objects, err := s.detector.Detect(ctx, image, mimeType, label)
	if err != nil {
		logger.Error("Object detection failed", "error", err)
		return nil, model.NewAppError(model.CodeUpstream, err.Error(), "", model.ErrInternalServer)
	}

	if len(objects) == 0 {
		logger.Info("Object not found")
		return &model.DetectResponse{
			Found: false,
			Label: label,
			BBox:  []float64{},
			Error: fmt.Sprintf("Object %q not found.", label),
		}, nil
	}

	obj := objects[0]
	logger.Info("Object detected", "objects", len(objects))
	return &model.DetectResponse{
		Found:      true,
		Label:      label,
		Confidence: 1.0,
		BBox:       []float64{obj.XMin, obj.YMin, obj.XMax - obj.XMin, obj.YMax - obj.YMin},
	}, nil
}
