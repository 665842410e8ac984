package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.BackpackService = (*BackpackService)(nil)

// BackpackService implements the Connect BackpackService.
type BackpackService struct {
	backpacks *ledger.Backpacks
}

func NewBackpackService(backpacks *ledger.Backpacks) *BackpackService {
	return &BackpackService{backpacks: backpacks}
}

func (s *BackpackService) GetBackpack(ctx context.Context, req *connect.Request[api.GetBackpackRequest]) (*connect.Response[api.BackpackResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.backpacks.GetBackpack(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "GetBackpack", err)
	}
	return connect.NewResponse(&api.BackpackResponse{Items: items}), nil
}

func (s *BackpackService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.BackpackResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.backpacks.AddItem(ctx, uid, req.Msg.Item)
	if err != nil {
		return nil, failed(ctx, "AddItem", err, "item_id", req.Msg.Item.ID)
	}
	return connect.NewResponse(&api.BackpackResponse{Items: items}), nil
}

func (s *BackpackService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BackpackResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.backpacks.RemoveItem(ctx, uid, req.Msg.ItemID)
	if err != nil {
		return nil, failed(ctx, "RemoveItem", err, "item_id", req.Msg.ItemID)
	}
	return connect.NewResponse(&api.BackpackResponse{Items: items}), nil
}
