package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"restaurant/internal/adapters/out/changefeed"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/application/views"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server-sent event names.
const (
	sseSnapshot = "snapshot"
	sseChange   = "change"
	sseReset    = "reset"
)

// StreamEvents handles GET /api/v1/tenants/{tenantId}/events.
//
// The stream subscribes before loading the board snapshot so no change between the two
// is lost; the board then drops what the snapshot already covers. Only changes that move
// the board forward are sent. When the subscription ends because the client fell behind
// or the feed closed, a reset event tells the client to reconnect.
func (s *Server) StreamEvents(ctx echo.Context) error {
	tenantID, err := pathUUID(ctx, "tenantId")
	if err != nil {
		return err
	}
	boardName, err := queryString(ctx.QueryParams(), "board", false)
	if err != nil {
		return err
	}
	orderID, filterOrder, err := queryUUID(ctx.QueryParams(), "orderId")
	if err != nil {
		return err
	}

	board, snapshotQuery, err := newStreamBoard(tenantID, boardName)
	if err != nil {
		return err
	}

	sub, err := s.feed.Subscribe(tenantID)
	if err != nil {
		return errs.Unavailable("change feed", err)
	}
	defer sub.Unsubscribe()

	reqCtx := ctx.Request().Context()

	var snapshot []queries.OrderView
	if snapshotQuery != nil {
		if snapshot, err = s.handlers.GetActiveOrders.Handle(reqCtx, *snapshotQuery); err != nil {
			return err
		}
		board.Load(snapshot)
	}

	w := ctx.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if snapshotQuery != nil {
		if err = writeEvent(w, sseSnapshot, "", toOrders(snapshot)); err != nil {
			return nil
		}
	}
	w.Flush()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil

		case event, ok := <-sub.Events():
			if !ok {
				s.endStream(ctx, w, sub.Err())
				return nil
			}
			if filterOrder && !event.OrderID.IsEqual(orderID) {
				continue
			}
			if !board.Apply(event) {
				continue
			}
			if err = writeEvent(w, sseChange, event.ID.String(), changefeed.NewMessage(event)); err != nil {
				return nil
			}
			w.Flush()

		case <-heartbeat.C:
			if _, err = fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func (s *Server) endStream(ctx echo.Context, w *echo.Response, reason error) {
	if reason == nil {
		return
	}
	if !errors.Is(reason, ports.ErrSlowSubscriber) && !errors.Is(reason, ports.ErrFeedClosed) {
		s.logger.WarnContext(ctx.Request().Context(), "Change feed subscription ended", "error", reason)
	}
	if err := writeEvent(w, sseReset, "", Error{Code: http.StatusServiceUnavailable, Message: reason.Error()}); err == nil {
		w.Flush()
	}
}

// newStreamBoard returns the projection used to filter the stream, and the query that
// seeds it for staff boards.
func newStreamBoard(tenantID kernel.UUID, name string) (*views.Board, *queries.GetActiveOrdersQuery, error) {
	var query queries.GetActiveOrdersQuery
	var err error

	switch name {
	case "kitchen":
		query, err = queries.NewKitchenBoardQuery(tenantID)
		return views.NewKitchenBoard(tenantID), &query, err
	case "waiter":
		query, err = queries.NewWaiterBoardQuery(tenantID)
		return views.NewWaiterBoard(tenantID), &query, err
	case "":
		return views.NewBoard(tenantID, false, order.AllStatuses()...), nil, nil
	default:
		return nil, nil, errs.NewValueIsInvalidError("board must be waiter or kitchen")
	}
}

func writeEvent(w *echo.Response, name, id string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if id != "" {
		if _, err = fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
