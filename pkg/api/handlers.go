package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/interchange"
	"github.com/Holastor/AION-2-Localization/pkg/logging"
	"github.com/Holastor/AION-2-Localization/pkg/query"
	"github.com/Holastor/AION-2-Localization/pkg/snapshot"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DiagnosticsHeader carries the number of encode diagnostics
const DiagnosticsHeader = "X-Diagnostics-Count"

// ContentTypeContainer is the media type of container bodies
const ContentTypeContainer = "application/octet-stream"

// defaultSearchLimit caps search results when no limit is given
const defaultSearchLimit = 100

// Server holds the API server state
type Server struct {
	codec     *codec.ContainerCodec
	snapshots SnapshotReader
	config    ServerConfig
	metrics   *Metrics
	logger    *zap.Logger
}

// NewServer creates a new API server
func NewServer(deps Dependencies, config ServerConfig, metrics *Metrics) *Server {
	if deps.Codec == nil {
		deps.Codec = codec.NewContainerCodec()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = int64(deps.Codec.Limits().MaxValueSpan) + 1<<20
	}
	return &Server{
		codec:     deps.Codec,
		snapshots: deps.Snapshots,
		config:    config,
		metrics:   metrics,
		logger:    deps.Logger,
	}
}

// handleHealth reports that the service is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// readBody reads the request body up to the configured cap
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

// handleDecode unpacks a container posted as the request body
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		s.metrics.RecordCodecOperation("decode", false, 0, 0, nil)
		return
	}

	container, diags := s.codec.Decode(body)
	logging.LogDiagnostics(s.logger, "http", diags)
	s.metrics.RecordCodecOperation("decode", true, container.Len(), len(body), diags)

	resp := DecodeResponse{
		Entries:     interchange.FromRecords(container.Records),
		Diagnostics: diags,
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = codec.Diagnostics{}
	}
	if h := container.Header; h != nil {
		resp.Header = &HeaderInfo{
			Tag:       h.Tag,
			Signature: h.SignatureString(),
			Trailer:   h.Trailer,
			Standard:  h.IsStandard(),
		}
	}
	sendSuccess(w, resp)
}

// handleEncode packs an interchange document into a container. Untranslated
// entries are dropped unless keep_empty=true.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		s.metrics.RecordCodecOperation("encode", false, 0, 0, nil)
		return
	}

	entries, err := interchange.Decode(bytes.NewReader(body))
	if err != nil {
		s.metrics.RecordCodecOperation("encode", false, 0, 0, nil)
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := codec.SkipEmptyValues
	if keep, _ := strconv.ParseBool(r.URL.Query().Get("keep_empty")); keep {
		filter = codec.KeepAll
	}

	records := interchange.ToRecords(entries)
	data, diags, err := s.codec.Encode(records, filter)
	logging.LogDiagnostics(s.logger, "http", diags)
	if err != nil {
		s.metrics.RecordCodecOperation("encode", false, 0, 0, diags)
		sendError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	written := 0
	for _, rec := range records {
		if filter(rec) && rec.KeyEncoding.Valid() && rec.ValueEncoding.Valid() {
			written++
		}
	}
	s.metrics.RecordCodecOperation("encode", true, written, len(data), diags)

	w.Header().Set("Content-Type", ContentTypeContainer)
	w.Header().Set("Content-Disposition", `attachment; filename="localization.dat"`)
	w.Header().Set(DiagnosticsHeader, strconv.Itoa(len(diags)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleListSnapshots lists archived snapshots
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		sendError(w, "Snapshots are not enabled", http.StatusNotFound)
		return
	}
	metas, err := s.snapshots.List()
	if err != nil {
		s.logger.Error("failed to list snapshots", zap.Error(err))
		sendError(w, "Failed to list snapshots", http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []snapshot.Meta{}
	}
	sendSuccess(w, metas)
}

// handleGetSnapshot returns one snapshot by id or name
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		sendError(w, "Snapshots are not enabled", http.StatusNotFound)
		return
	}
	ref := chi.URLParam(r, "ref")
	meta, entries, err := s.snapshots.Get(ref)
	if errors.Is(err, snapshot.ErrNotFound) {
		sendError(w, "Snapshot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to read snapshot", zap.String("ref", ref), zap.Error(err))
		sendError(w, "Failed to read snapshot", http.StatusInternalServerError)
		return
	}
	sendSuccess(w, SnapshotResponse{Meta: meta, Entries: entries})
}

// handleSearchSnapshot returns the entries of a snapshot matching every q
// parameter
func (s *Server) handleSearchSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		sendError(w, "Snapshots are not enabled", http.StatusNotFound)
		return
	}

	params := r.URL.Query()
	queries := make([]query.FieldQuery, 0, len(params["q"]))
	for _, raw := range params["q"] {
		q, err := query.ParseFieldQuery(raw)
		if err != nil {
			sendError(w, "Invalid query: "+err.Error(), http.StatusBadRequest)
			return
		}
		queries = append(queries, q)
	}
	limit := defaultSearchLimit
	if v := params.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	ref := chi.URLParam(r, "ref")
	_, entries, err := s.snapshots.Get(ref)
	if errors.Is(err, snapshot.ErrNotFound) {
		sendError(w, "Snapshot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to read snapshot", zap.String("ref", ref), zap.Error(err))
		sendError(w, "Failed to read snapshot", http.StatusInternalServerError)
		return
	}

	it, err := query.NewEngine(nil).Execute(r.Context(), entries, queries...)
	if err != nil {
		sendError(w, "Invalid query: "+err.Error(), http.StatusBadRequest)
		return
	}
	results, err := query.Collect(it, limit)
	if err != nil {
		sendError(w, "Search aborted", http.StatusServiceUnavailable)
		return
	}
	if results == nil {
		results = []query.Result{}
	}
	sendSuccess(w, results)
}
