package service

import (
	"context"
	"errors"
	"testing"

	"go_duduolingo/internal/model"
	"go_duduolingo/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTarget(t *testing.T) {
	assert.Equal(t, "apple", FirstTarget(" apple , fruit"))
	assert.Equal(t, "dog", FirstTarget("dog"))
	assert.Equal(t, "", FirstTarget(" , cat"))
}

func TestDetectService_Detect(t *testing.T) {
	ctx := context.Background()
	image := []byte("png-bytes")

	tests := []struct {
		name      string
		target    string
		image     []byte
		setupMock func(m *mocks.ObjectDetector)
		want      *model.DetectResponse
		wantErr   error
	}{
		{
			name:   "正常系: 最初の定義だけで検出",
			target: "cat, kitten",
			image:  image,
			setupMock: func(m *mocks.ObjectDetector) {
				m.On("Enabled").Return(true)
				m.On("Detect", ctx, image, "image/png", "cat").
					Return([]model.DetectedObject{{XMin: 0.1, YMin: 0.2, XMax: 0.5, YMax: 0.7}}, nil).Once()
			},
			want: &model.DetectResponse{Found: true, Label: "cat", Confidence: 1.0, BBox: []float64{0.1, 0.2, 0.5 - 0.1, 0.7 - 0.2}},
		},
		{
			name:   "正常系: 見つからない",
			target: "dog",
			image:  image,
			setupMock: func(m *mocks.ObjectDetector) {
				m.On("Enabled").Return(true)
				m.On("Detect", ctx, image, "image/png", "dog").Return([]model.DetectedObject{}, nil).Once()
			},
			want: &model.DetectResponse{Found: false, Label: "dog", BBox: []float64{}, Error: `Object "dog" not found.`},
		},
		{
			name:    "異常系: target なし",
			target:  "  ",
			image:   image,
			wantErr: model.ErrInvalidInput,
		},
		{
			name:    "異常系: 画像なし",
			target:  "cat",
			wantErr: model.ErrInvalidInput,
		},
		{
			name:   "異常系: APIキー未設定",
			target: "cat",
			image:  image,
			setupMock: func(m *mocks.ObjectDetector) {
				m.On("Enabled").Return(false)
			},
			wantErr: model.ErrUnavailable,
		},
		{
			name:   "異常系: 上流エラー",
			target: "cat",
			image:  image,
			setupMock: func(m *mocks.ObjectDetector) {
				m.On("Enabled").Return(true)
				m.On("Detect", ctx, image, "image/png", "cat").Return(nil, errors.New("upstream status 502")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := mocks.NewObjectDetector(t)
			if tt.setupMock != nil {
				tt.setupMock(detector)
			}
			got, err := NewDetectService(detector).Detect(ctx, tt.target, tt.image, "image/png")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Found, got.Found)
			assert.Equal(t, tt.want.Label, got.Label)
			assert.Equal(t, tt.want.Confidence, got.Confidence)
			assert.InDeltaSlice(t, tt.want.BBox, got.BBox, 1e-9)
			assert.Equal(t, tt.want.Error, got.Error)
		})
	}
}
