package device

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "device-sync",
		Method:      http.MethodGet,
		Path:        "/api/v1/device/sync",
		Summary:     "Fetch the full device sync payload",
		Description: "Returns the point-in-time snapshot a device needs to operate autonomously, with its content hash in X-Payload-Hash.",
		Tags:        []string{"device"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) logEventOp() huma.Operation {
	return huma.Operation{
		OperationID:   "device-log-event",
		Method:        http.MethodPost,
		Path:          "/api/v1/device/events",
		Summary:       "Record an access event reported by a device",
		Tags:          []string{"device", "events"},
		Middlewares:   h.middleware,
		DefaultStatus: http.StatusCreated,
	}
}

func (h *Handler) uploadCaptureOp() huma.Operation {
	return huma.Operation{
		OperationID:   "device-upload-capture",
		Method:        http.MethodPost,
		Path:          "/api/v1/device/captures",
		Summary:       "Store a captured frame from a device",
		Tags:          []string{"device", "photos"},
		Middlewares:   h.middleware,
		DefaultStatus: http.StatusCreated,
	}
}
