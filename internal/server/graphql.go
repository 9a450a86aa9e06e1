package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jgoulah/btcenergy/internal/graph"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	req, err := parseGraphQLRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	result := graph.Execute(r.Context(), s.schema, req)
	if result.HasErrors() {
		for _, e := range result.Errors {
			s.log.Warn("query error",
				zap.String("request_id", requestIDFrom(r.Context())),
				zap.String("error", e.Message),
			)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func parseGraphQLRequest(r *http.Request) (graph.Request, error) {
	var req graph.Request

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return req, fmt.Errorf("parsing variables: %w", err)
			}
		}
		return req, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return req, fmt.Errorf("reading body: %w", err)
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("parsing body: %w", err)
	}
	return req, nil
}
