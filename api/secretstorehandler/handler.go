package secretstorehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ruteri/secretstore-backend/cryptoutils"
	"github.com/ruteri/secretstore-backend/interfaces"
)

// maxBodySize is the maximum allowed request body size (32MB), covering the
// document plus hex and JSON overhead.
const maxBodySize = 32 * 1024 * 1024

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "secretstore_document_requests_total",
		Help: "Number of document encryption API requests by operation.",
	}, []string{"operation"})

	requestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "secretstore_document_request_errors_total",
		Help: "Number of failed document encryption API requests by operation.",
	}, []string{"operation"})
)

// EncryptRequest asks for a document to be encrypted under distributed key
// material. All byte fields are 0x-prefixed hex.
type EncryptRequest struct {
	// Key is the 64-byte distributedly generated public key.
	Key hexutil.Bytes `json:"key"`

	// Document is the plaintext to encrypt.
	Document hexutil.Bytes `json:"document"`
}

// EncryptResponse carries the encrypted document: ciphertext followed by
// the 16-byte initialization vector.
type EncryptResponse struct {
	Encrypted hexutil.Bytes `json:"encrypted"`
}

// DecryptRequest asks for an encrypted document to be decrypted with fully
// assembled key material.
type DecryptRequest struct {
	Key       hexutil.Bytes `json:"key"`
	Encrypted hexutil.Bytes `json:"encrypted"`
}

// DecryptResponse carries the decrypted document.
type DecryptResponse struct {
	Document hexutil.Bytes `json:"document"`
}

// ShadowDecryptRequest asks for a decryption using partial ("shadow")
// contributions from the key servers instead of assembled key material.
type ShadowDecryptRequest struct {
	// DecryptedSecret is the requester-held decrypted shadow point (64 bytes).
	DecryptedSecret hexutil.Bytes `json:"decrypted_secret"`

	// CommonPoint is the point shared by all partial decryptions (64 bytes).
	CommonPoint hexutil.Bytes `json:"common_point"`

	// DecryptShadows are the per-server shadow coefficients (32 bytes each),
	// in the order produced by the decryption session.
	DecryptShadows []hexutil.Bytes `json:"decrypt_shadows"`

	Encrypted hexutil.Bytes `json:"encrypted"`
}

// Handler processes HTTP requests for the secret-store document encryption
// API. It decodes hex-encoded request parameters into byte buffers, invokes
// the document encryption core, and maps core failures onto HTTP error
// responses.
type Handler struct {
	encryptor interfaces.DocumentEncryptor
	log       *slog.Logger
}

// NewHandler creates a new HTTP request handler backed by the given
// document encryption core.
func NewHandler(encryptor interfaces.DocumentEncryptor, log *slog.Logger) *Handler {
	return &Handler{
		encryptor: encryptor,
		log:       log,
	}
}

// RegisterRoutes attaches the document encryption endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/v1/document/encrypt", h.HandleEncrypt)
	r.Post("/api/v1/document/decrypt", h.HandleDecrypt)
	r.Post("/api/v1/document/shadow-decrypt", h.HandleShadowDecrypt)
}

// HandleEncrypt encrypts a document under distributed key material.
//
// URL format: POST /api/v1/document/encrypt
// Request body: JSON EncryptRequest
// Response: JSON EncryptResponse; the encrypted buffer is the ciphertext
// (same length as the document) followed by a fresh 16-byte IV.
func (h *Handler) HandleEncrypt(w http.ResponseWriter, r *http.Request) {
	requestsTotal.WithLabelValues("encrypt").Inc()

	var req EncryptRequest
	if err := decodeRequest(r, &req); err != nil {
		requestErrorsTotal.WithLabelValues("encrypt").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	encrypted, err := h.encryptor.EncryptDocument(req.Key, req.Document)
	if err != nil {
		h.writeOperationError(w, "encrypt", err)
		return
	}

	writeResponse(w, h.log, &EncryptResponse{Encrypted: encrypted})
}

// HandleDecrypt decrypts a document with fully assembled key material.
//
// URL format: POST /api/v1/document/decrypt
// Request body: JSON DecryptRequest
// Response: JSON DecryptResponse
func (h *Handler) HandleDecrypt(w http.ResponseWriter, r *http.Request) {
	requestsTotal.WithLabelValues("decrypt").Inc()

	var req DecryptRequest
	if err := decodeRequest(r, &req); err != nil {
		requestErrorsTotal.WithLabelValues("decrypt").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	document, err := h.encryptor.DecryptDocument(req.Key, req.Encrypted)
	if err != nil {
		h.writeOperationError(w, "decrypt", err)
		return
	}

	writeResponse(w, h.log, &DecryptResponse{Document: document})
}

// HandleShadowDecrypt decrypts a document from partial decryption
// contributions. The shadow coefficients and points are validated before
// the combination runs; combination failures are reported with a generic
// message on purpose.
//
// URL format: POST /api/v1/document/shadow-decrypt
// Request body: JSON ShadowDecryptRequest
// Response: JSON DecryptResponse
func (h *Handler) HandleShadowDecrypt(w http.ResponseWriter, r *http.Request) {
	requestsTotal.WithLabelValues("shadow_decrypt").Inc()

	var req ShadowDecryptRequest
	if err := decodeRequest(r, &req); err != nil {
		requestErrorsTotal.WithLabelValues("shadow_decrypt").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	decryptedShadow, err := cryptoutils.NewPublic(req.DecryptedSecret)
	if err != nil {
		requestErrorsTotal.WithLabelValues("shadow_decrypt").Inc()
		http.Error(w, fmt.Errorf("invalid decrypted_secret: %w", err).Error(), http.StatusBadRequest)
		return
	}

	commonPoint, err := cryptoutils.NewPublic(req.CommonPoint)
	if err != nil {
		requestErrorsTotal.WithLabelValues("shadow_decrypt").Inc()
		http.Error(w, fmt.Errorf("invalid common_point: %w", err).Error(), http.StatusBadRequest)
		return
	}

	if len(req.DecryptShadows) == 0 {
		requestErrorsTotal.WithLabelValues("shadow_decrypt").Inc()
		http.Error(w, "decrypt_shadows must not be empty", http.StatusBadRequest)
		return
	}

	shadows := make([]cryptoutils.Secret, len(req.DecryptShadows))
	for i, shadow := range req.DecryptShadows {
		shadows[i], err = cryptoutils.NewSecret(shadow)
		if err != nil {
			requestErrorsTotal.WithLabelValues("shadow_decrypt").Inc()
			http.Error(w, fmt.Errorf("invalid decrypt_shadows[%d]: %w", i, err).Error(), http.StatusBadRequest)
			return
		}
	}

	document, err := h.encryptor.DecryptDocumentWithShadow(decryptedShadow, commonPoint, shadows, req.Encrypted)
	if err != nil {
		h.writeOperationError(w, "shadow_decrypt", err)
		return
	}

	writeResponse(w, h.log, &DecryptResponse{Document: document})
}

// writeOperationError maps a document encryption core failure onto an HTTP
// response.
func (h *Handler) writeOperationError(w http.ResponseWriter, operation string, err error) {
	requestErrorsTotal.WithLabelValues(operation).Inc()

	switch {
	case errors.Is(err, cryptoutils.ErrInvalidKeyLength), errors.Is(err, cryptoutils.ErrInvalidCiphertext):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cryptoutils.ErrEncryptionFailed):
		// The diagnostic detail stays out of the response: which arithmetic
		// step failed would leak structural information about key material.
		h.log.Debug("Shadow combination failed", "operation", operation, "err", err)
		http.Error(w, cryptoutils.ErrEncryptionFailed.Error(), http.StatusBadRequest)
	default:
		h.log.Error("Document operation failed", "operation", operation, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeRequest(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("could not decode request: %w", err)
	}
	return nil
}

func writeResponse(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
