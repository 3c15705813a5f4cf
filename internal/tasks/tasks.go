package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/raf-aleaqarih/raf24-api/internal/config"
	"github.com/raf-aleaqarih/raf24-api/internal/models"
	"github.com/raf-aleaqarih/raf24-api/internal/services"
	"github.com/raf-aleaqarih/raf24-api/internal/storage"
)

// Task types handled by the bg worker.
const (
	TypeImageVariants    = "image:variants"
	TypeAnalyticsForward = "analytics:forward"
	TypeStorageCleanup   = "storage:cleanup"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	})
}

// NewImageVariantsTask builds the task that generates resized renditions of
// an uploaded gallery image.
func NewImageVariantsTask(key string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageVariantsPayload{Key: key})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeImageVariants, payload, asynq.Queue("images"), asynq.MaxRetry(3)), nil
}

// NewAnalyticsForwardTask builds the task that reports a converted inquiry
// to the configured ad platforms.
func NewAnalyticsForwardTask(inquiryID primitive.ObjectID, event string) (*asynq.Task, error) {
	payload, err := json.Marshal(AnalyticsForwardPayload{InquiryID: inquiryID.Hex(), Event: event})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAnalyticsForward, payload, asynq.Queue("default"), asynq.MaxRetry(5)), nil
}

// NewStorageCleanupTask builds the task that removes orphaned storage
// objects after a media delete or a failed upload.
func NewStorageCleanupTask(keys []string) (*asynq.Task, error) {
	payload, err := json.Marshal(StorageCleanupPayload{Keys: keys})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStorageCleanup, payload, asynq.Queue("low"), asynq.MaxRetry(10)), nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor holds the dependencies the task handlers need.
type TaskProcessor struct {
	cfg             *config.Config
	store           storage.IObjectStorage
	inquiryService  services.IInquiryService
	settingsService services.ISettingsService
	logger          *zap.Logger
	httpClient      *http.Client
}

func NewTaskProcessor(
	cfg *config.Config,
	store storage.IObjectStorage,
	inquiryService services.IInquiryService,
	settingsService services.ISettingsService,
	logger *zap.Logger,
) *TaskProcessor {
	return &TaskProcessor{
		cfg:             cfg,
		store:           store,
		inquiryService:  inquiryService,
		settingsService: settingsService,
		logger:          logger,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SetupServer configures an Asynq server, registers the handlers and runs
// it. Blocks until the server stops.
func SetupServer(rdb *redis.Client, processor *TaskProcessor, logger *zap.Logger) error {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     rdb.Options().Addr,
			Password: rdb.Options().Password,
			DB:       rdb.Options().DB,
		},
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"images":  5,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImageVariants, processor.HandleImageVariantsTask)
	mux.HandleFunc(TypeAnalyticsForward, processor.HandleAnalyticsForwardTask)
	mux.HandleFunc(TypeStorageCleanup, processor.HandleStorageCleanupTask)

	return srv.Run(mux)
}

// --- Task Handlers ---

// ImageVariantsPayload identifies the original object to derive variants
// from.
type ImageVariantsPayload struct {
	Key string `json:"key"`
}

// HandleImageVariantsTask downloads the original image and stores one JPEG
// rendition per configured width. Widths at or above the original are
// skipped.
func (p *TaskProcessor) HandleImageVariantsTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageVariantsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image variants payload: %v: %w", err, asynq.SkipRetry)
	}

	body, err := p.store.Download(ctx, payload.Key)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", payload.Key, err)
	}
	defer body.Close()

	imgData, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", payload.Key, err)
	}

	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		p.logger.Warn("object is not a decodable image, skipping variants",
			zap.String("key", payload.Key), zap.Error(err))
		return fmt.Errorf("undecodable image: %w", asynq.SkipRetry)
	}
	originalWidth := img.Bounds().Dx()

	for _, width := range p.cfg.ImageVariantWidths {
		if width >= originalWidth {
			continue
		}
		resized := resize.Resize(uint(width), 0, img, resize.Lanczos3)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
			return fmt.Errorf("failed to encode %dpx variant of %s: %w", width, payload.Key, err)
		}
		if err := p.store.UploadVariant(ctx, payload.Key, width, "image/jpeg", bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
			return err
		}
	}

	p.logger.Info("image variants generated",
		zap.String("key", payload.Key),
		zap.String("format", format),
		zap.Int("original_width", originalWidth))
	return nil
}

// AnalyticsForwardPayload identifies the inquiry whose conversion should be
// reported.
type AnalyticsForwardPayload struct {
	InquiryID string `json:"inquiry_id"`
	Event     string `json:"event"`
}

// conversionEvent is the body POSTed to each platform endpoint.
type conversionEvent struct {
	PixelID   string           `json:"pixel_id"`
	Event     string           `json:"event"`
	EventTime int64            `json:"event_time"`
	Source    string           `json:"source"`
	Platform  string           `json:"platform,omitempty"`
	UTM       models.UTMParams `json:"utm,omitempty"`
}

// HandleAnalyticsForwardTask posts the conversion to every platform that has
// both an endpoint URL and a pixel ID configured. Platform failures are
// retried as a whole task.
func (p *TaskProcessor) HandleAnalyticsForwardTask(ctx context.Context, t *asynq.Task) error {
	var payload AnalyticsForwardPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal analytics payload: %v: %w", err, asynq.SkipRetry)
	}

	inquiryID, err := primitive.ObjectIDFromHex(payload.InquiryID)
	if err != nil {
		return fmt.Errorf("invalid inquiry id %q: %w", payload.InquiryID, asynq.SkipRetry)
	}
	inquiry, err := p.inquiryService.FindByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("inquiry %s gone: %w", payload.InquiryID, asynq.SkipRetry)
		}
		return err
	}

	settings, err := p.settingsService.GetContactSettings(ctx)
	if err != nil {
		return err
	}

	targets := []struct {
		name    string
		url     string
		pixelID string
	}{
		{"facebook", p.cfg.FacebookConversionsURL, settings.Pixels.Facebook},
		{"tiktok", p.cfg.TikTokEventsURL, settings.Pixels.TikTok},
		{"snapchat", p.cfg.SnapchatEventsURL, settings.Pixels.Snapchat},
	}

	sent := 0
	for _, target := range targets {
		if target.url == "" || target.pixelID == "" {
			continue
		}
		event := conversionEvent{
			PixelID:   target.pixelID,
			Event:     payload.Event,
			EventTime: time.Now().Unix(),
			Source:    inquiry.Source,
			Platform:  inquiry.Platform,
			UTM:       inquiry.UTM,
		}
		if err := p.postJSON(ctx, target.url, event); err != nil {
			p.logger.Warn("conversion forwarding failed",
				zap.String("platform", target.name),
				zap.String("inquiry_id", payload.InquiryID),
				zap.Error(err))
			return err
		}
		sent++
	}

	p.logger.Info("conversion forwarded",
		zap.String("inquiry_id", payload.InquiryID),
		zap.String("event", payload.Event),
		zap.Int("platforms", sent))
	return nil
}

func (p *TaskProcessor) postJSON(ctx context.Context, url string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint %s returned status %d", url, resp.StatusCode)
	}
	return nil
}

// StorageCleanupPayload lists object keys to remove.
type StorageCleanupPayload struct {
	Keys []string `json:"keys"`
}

// HandleStorageCleanupTask deletes orphaned objects. Any failure retries
// the whole batch; Delete is idempotent so repeats are safe.
func (p *TaskProcessor) HandleStorageCleanupTask(ctx context.Context, t *asynq.Task) error {
	var payload StorageCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal cleanup payload: %v: %w", err, asynq.SkipRetry)
	}

	for _, key := range payload.Keys {
		if err := p.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		// Variants share the key prefix; remove them too.
		for _, width := range p.cfg.ImageVariantWidths {
			if err := p.store.Delete(ctx, storage.VariantKey(key, width)); err != nil {
				p.logger.Warn("variant cleanup failed", zap.String("key", key), zap.Int("width", width), zap.Error(err))
			}
		}
	}
	return nil
}
