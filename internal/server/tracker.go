package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rocketleague-tracker/internal/profile"
	"rocketleague-tracker/internal/service"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServicePath = "/rocketleague.v1.RocketLeagueTracker/"

const (
	GetProfileProcedure       = ServicePath + "GetProfile"
	GetPlaylistProcedure      = ServicePath + "GetPlaylist"
	GetUserinfoProcedure      = ServicePath + "GetUserinfo"
	CompareProfilesProcedure  = ServicePath + "CompareProfiles"
	GetRatingHistoryProcedure = ServicePath + "GetRatingHistory"
)

type TrackerServer struct {
	profileSvc *service.ProfileService
}

func NewTrackerServer(profileSvc *service.ProfileService) *TrackerServer {
	return &TrackerServer{profileSvc: profileSvc}
}

// Handler mounts every procedure of the service under ServicePath.
func (s *TrackerServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(GetProfileProcedure, connect.NewUnaryHandler(GetProfileProcedure, s.GetProfile, opts...))
	mux.Handle(GetPlaylistProcedure, connect.NewUnaryHandler(GetPlaylistProcedure, s.GetPlaylist, opts...))
	mux.Handle(GetUserinfoProcedure, connect.NewUnaryHandler(GetUserinfoProcedure, s.GetUserinfo, opts...))
	mux.Handle(CompareProfilesProcedure, connect.NewUnaryHandler(CompareProfilesProcedure, s.CompareProfiles, opts...))
	mux.Handle(GetRatingHistoryProcedure, connect.NewUnaryHandler(GetRatingHistoryProcedure, s.GetRatingHistory, opts...))
	return ServicePath, mux
}

func (s *TrackerServer) GetProfile(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	r := fields(req.Msg)
	platform, err := r.platform()
	if err != nil {
		return nil, err
	}

	result, err := s.profileSvc.GetProfile(ctx, platform, r.str("username"), profile.Options{Raw: r.boolean("raw")})
	if err != nil {
		return nil, connectError(err)
	}
	return respond(result)
}

func (s *TrackerServer) GetPlaylist(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	r := fields(req.Msg)
	platform, err := r.platform()
	if err != nil {
		return nil, err
	}
	stats, err := s.profileSvc.GetPlaylist(ctx, platform, r.str("username"), r.str("playlist"), profile.Options{Raw: r.boolean("raw")})
	if err != nil {
		return nil, connectError(err)
	}
	return respond(stats)
}

func (s *TrackerServer) GetUserinfo(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	r := fields(req.Msg)
	platform, err := r.platform()
	if err != nil {
		return nil, err
	}

	user, err := s.profileSvc.GetUserinfo(ctx, platform, r.str("username"))
	if err != nil {
		return nil, connectError(err)
	}
	return respond(user)
}

func (s *TrackerServer) CompareProfiles(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	r := fields(req.Msg)
	platform, err := r.platform()
	if err != nil {
		return nil, err
	}

	results, err := s.profileSvc.Compare(ctx, platform, r.strs("usernames"))
	if err != nil {
		return nil, connectError(err)
	}
	return respond(map[string]any{"profiles": results})
}

func (s *TrackerServer) GetRatingHistory(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	r := fields(req.Msg)
	platform, err := r.platform()
	if err != nil {
		return nil, err
	}

	history, err := s.profileSvc.RatingHistory(ctx, platform, r.str("platform_user_id"), r.str("playlist"), int(r.number("limit")))
	if err != nil {
		return nil, connectError(err)
	}
	return respond(map[string]any{"ratings": history})
}

// connectError maps lookup failures onto Connect codes.
func connectError(err error) error {
	var (
		fetchErr *profile.FetchError
		parseErr *profile.ParseError
		statErr  *profile.StatError
	)
	switch {
	case errors.Is(err, profile.ErrInvalidPlatform), errors.Is(err, profile.ErrEmptyUsername), errors.Is(err, service.ErrTooManyAccounts),
		errors.Is(err, service.ErrMissingPlaylist), errors.Is(err, service.ErrMissingUserID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, profile.ErrNotLoaded):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.As(err, &fetchErr):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.As(err, &parseErr), errors.As(err, &statErr):
		return connect.NewError(connect.CodeInternal, err)
	}
	if _, ok := profile.AsProviderError(err); ok {
		return connect.NewError(connect.CodeNotFound, err)
	}
	if _, ok := profile.AsSegmentNotFound(err); ok {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeUnknown, err)
}

// respond encodes v through its JSON form so responses keep the field names
// of the domain records.
func respond(v any) (*connect.Response[structpb.Struct], error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode response: %w", err))
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode response: %w", err))
	}
	msg, err := structpb.NewStruct(m)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode response: %w", err))
	}
	return connect.NewResponse(msg), nil
}

type requestFields map[string]*structpb.Value

func fields(msg *structpb.Struct) requestFields {
	return requestFields(msg.GetFields())
}

func (f requestFields) str(key string) string { return f[key].GetStringValue() }

func (f requestFields) boolean(key string) bool { return f[key].GetBoolValue() }

func (f requestFields) number(key string) float64 { return f[key].GetNumberValue() }

func (f requestFields) strs(key string) []string {
	var out []string
	for _, v := range f[key].GetListValue().GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

func (f requestFields) platform() (profile.Platform, error) {
	p, err := profile.ParsePlatform(f.str("platform"))
	if err != nil {
		return "", connect.NewError(connect.CodeInvalidArgument, err)
	}
	return p, nil
}
