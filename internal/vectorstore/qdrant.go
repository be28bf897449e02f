package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"repoqa/internal/contextutil"
)

// QdrantStore keeps file-summary vectors in a Qdrant collection. Point IDs are
// the file embedding UUIDs, the payload carries project_id and file_name.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore connects to Qdrant. urlStr is the HTTP URL
// (e.g. "http://localhost:6333"); the client talks gRPC on the next port.
func NewQdrantStore(urlStr string) (*QdrantStore, error) {
	host, port, err := grpcAddress(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{Host: host, Port: port})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	return &QdrantStore{client: client}, nil
}

func grpcAddress(urlStr string) (string, int, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := u.Hostname()
	if host == "" {
		host = "localhost"
	}
	port := 6334
	if p := u.Port(); p != "" {
		if httpPort, err := strconv.Atoi(p); err == nil {
			port = httpPort + 1
		}
	}
	return host, port, nil
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// Upsert writes points and waits until Qdrant has applied them, so a
// following Search sees the new vectors.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		structs[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vec...),
			Payload: qdrant.NewValueMap(p.Meta),
		}
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         structs,
	}); err != nil {
		return fmt.Errorf("failed to upsert %d points into %s: %w", len(points), collection, err)
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Search returns the k nearest points by cosine similarity, best first.
func (s *QdrantStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	if k <= 0 {
		return nil, errors.New("k must be greater than 0")
	}
	filter, err := buildFilter(filters)
	if err != nil {
		return nil, err
	}

	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(query...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", collection, err)
	}

	results := make([]SearchResult, 0, len(scored))
	for _, sp := range scored {
		results = append(results, SearchResult{
			PointID: pointID(sp.GetId()),
			Score:   float64(sp.GetScore()),
			Meta:    convertPayloadToMap(sp.GetPayload()),
		})
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "vector search", "collection", collection, "k", k, "results", len(results))
	return results, nil
}

// Delete removes points by ID.
func (s *QdrantStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrant.NewID(id)
	}
	return s.delete(ctx, collection, qdrant.NewPointsSelector(pointIDs...), "ids", len(ids))
}

// DeleteByFilter removes every point matching the filters. An empty filter
// is rejected rather than clearing the collection.
func (s *QdrantStore) DeleteByFilter(ctx context.Context, collection string, filters map[string]any) error {
	filter, err := buildFilter(filters)
	if err != nil {
		return err
	}
	if filter == nil {
		return errors.New("refusing to delete without a filter")
	}
	return s.delete(ctx, collection, qdrant.NewPointsSelectorFilter(filter), "filters", filters)
}

func (s *QdrantStore) delete(ctx context.Context, collection string, sel *qdrant.PointsSelector, args ...any) error {
	if _, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         sel,
	}); err != nil {
		return fmt.Errorf("failed to delete points from %s: %w", collection, err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "deleted points", append([]any{"collection", collection}, args...)...)
	return nil
}

// buildFilter turns equality filters into must-conditions, keys sorted.
func buildFilter(filters map[string]any) (*qdrant.Filter, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	must := make([]*qdrant.Condition, 0, len(keys))
	for _, key := range keys {
		switch v := filters[key].(type) {
		case string:
			must = append(must, qdrant.NewMatch(key, v))
		case int:
			must = append(must, qdrant.NewMatchInt(key, int64(v)))
		case int64:
			must = append(must, qdrant.NewMatchInt(key, v))
		case bool:
			must = append(must, qdrant.NewMatchBool(key, v))
		default:
			return nil, fmt.Errorf("unsupported filter type %T for %q", v, key)
		}
	}
	return &qdrant.Filter{Must: must}, nil
}

// EnsureCollection creates the collection with cosine distance when missing,
// otherwise checks that its vector size matches. Each of keywordFields gets a
// keyword payload index so filtered searches and deletes stay cheap.
func (s *QdrantStore) EnsureCollection(ctx context.Context, collection string, vectorSize int, keywordFields ...string) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if exists {
		info, err := s.client.GetCollectionInfo(ctx, collection)
		if err != nil {
			return fmt.Errorf("failed to get collection info: %w", err)
		}
		actual := collectionVectorSize(info)
		if actual == 0 {
			return fmt.Errorf("could not determine vector size of collection %s", collection)
		}
		if actual != vectorSize {
			return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, actual)
		}
		logger.InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
		return nil
	}

	if err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	for _, field := range keywordFields {
		if _, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		}); err != nil {
			return fmt.Errorf("failed to index payload field %s: %w", field, err)
		}
	}
	logger.InfoContext(ctx, "collection created", "collection", collection, "vector_size", vectorSize, "indexed_fields", keywordFields)
	return nil
}

// GetCollectionInfo reports the collection's vector size, point count and status.
func (s *QdrantStore) GetCollectionInfo(ctx context.Context, collection string) (*CollectionInfo, error) {
	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection info: %w", err)
	}

	out := &CollectionInfo{VectorSize: collectionVectorSize(info), Status: "unknown"}
	if info.PointsCount != nil {
		out.PointsCount = int(*info.PointsCount)
	}
	if info.Status != 0 {
		out.Status = info.Status.String()
	}
	return out, nil
}

func collectionVectorSize(info *qdrant.CollectionInfo) int {
	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0
	}
	return int(params.GetSize())
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if v != nil {
			out[k] = valueOf(v)
		}
	}
	return out
}

func valueOf(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		list := make([]any, len(items))
		for i, item := range items {
			list[i] = valueOf(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(kind.StructValue.GetFields())
	default:
		return nil
	}
}
