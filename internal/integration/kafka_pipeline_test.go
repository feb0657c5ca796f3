//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/adapter/kafka"
	"github.com/couchcryptid/quake-scenario-etl/internal/config"
	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/couchcryptid/quake-scenario-etl/internal/observability"
	"github.com/couchcryptid/quake-scenario-etl/internal/pipeline"
	"github.com/couchcryptid/quake-scenario-etl/internal/repository"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSourceTopic = "test-source"
	testSinkTopic   = "test-sink"
)

// scenarioMessage holds a deserialized message read from the sink topic.
type scenarioMessage struct {
	Message domain.ScenarioMessage
	Key     string
	Headers map[string]string
}

// readScenario reads a single message from the sink consumer and deserializes it.
func readScenario(ctx context.Context, t *testing.T, consumer *kafkago.Reader) scenarioMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var sm domain.ScenarioMessage
	require.NoError(t, json.Unmarshal(msg.Value, &sm), "unmarshal sink message")

	return scenarioMessage{Message: sm, Key: string(msg.Key), Headers: headers}
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "dialect", "testdata", name))
	require.NoError(t, err)
	return data
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 2 * time.Second,
	}
}

func sinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestKafkaReaderWriter verifies that kafka.Reader and kafka.Writer
// round-trip a rupture document and its scenarios through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	payload := fixture(t, "trace.json")
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{Key: []byte("charlevoix"), Value: payload}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for len(batch) == 0 {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("charlevoix"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	require.NotNil(t, raw.Commit)
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer(domain.Options{Index: []int{0}}, nil,
		observability.NewMetricsForTesting(), discardLogger())
	scenarios, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, scenarios))

	got := readScenario(ctx, t, sinkConsumer(t, broker))
	assert.Equal(t, "charlevoix_0_m7p_se", got.Key)
	assert.Equal(t, "charlevoix_0_m7p_se", got.Headers["event_id"])
	assert.Equal(t, "trace", got.Headers["dialect"])
	assert.Len(t, got.Message.Quads, 2)
	assert.Equal(t, domain.DescriptionMedian, got.Message.Event.Description)
}

// TestPipelineEndToEnd publishes every dialect fixture and checks that one
// scenario per catalog event reaches the sink topic and the store.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	docs := map[string]int{
		"ucerf3.json":     2,
		"trace.json":      2,
		"rupture.geojson": 1,
		"point.json":      2,
	}
	want := 0
	msgs := make([]kafkago.Message, 0, len(docs))
	for name, n := range docs {
		msgs = append(msgs, kafkago.Message{Key: []byte(name), Value: fixture(t, name)})
		want += n
	}
	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	db, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.Options{}, nil, metrics, discardLogger())
	p := pipeline.New(reader, transformer, pipeline.MultiLoader{writer, repository.NewLoader(db)},
		discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := sinkConsumer(t, broker)
	dialects := map[string]int{}
	for i := 0; i < want; i++ {
		sm := readScenario(ctx, t, consumer)
		dialects[sm.Headers["dialect"]]++
		_, err := time.Parse(time.RFC3339, sm.Headers["processed_at"])
		assert.NoError(t, err, "invalid processed_at format")
		assert.Equal(t, sm.Key, sm.Message.Event.ID)
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	assert.Equal(t, map[string]int{"ucerf3": 2, "trace": 2, "geojson": 1, "point": 2}, dialects)

	stored, err := db.List(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Len(t, stored, want)
}

// TestPipelineTransformError verifies that an invalid document (poison pill)
// is skipped and the pipeline continues with valid documents.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not a rupture document")},
		kafkago.Message{Key: []byte("good"), Value: fixture(t, "point.json")},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(domain.Options{Index: []int{0}}, nil, metrics, discardLogger())
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 10)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	got := readScenario(ctx, t, sinkConsumer(t, broker))
	pipelineCancel()
	require.NoError(t, <-errCh)

	assert.Equal(t, "point", got.Headers["dialect"])
	assert.Equal(t, "pt1_m6p_se", got.Key)
}
