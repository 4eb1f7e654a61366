package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"netsketch/app/apperr"
	"netsketch/app/dto"
	"netsketch/app/layout"
	"netsketch/app/models"
	"netsketch/app/policy"
	"netsketch/app/repo"
)

// Caller is the authenticated identity resolved by the auth middleware.
type Caller struct {
	ID       string
	Username string
	Role     string
}

const (
	AccessLevelOwner  = "owner"
	AccessLevelPublic = "public"
	AccessLevelShared = "shared"
)

// NetworkService orchestrates authorization, the graph store and the layout
// serializer for every network operation. Visibility denials surface as
// ErrNotFound so callers cannot distinguish "absent" from "not yours".
type NetworkService struct {
	networks *repo.NetworkRepository
	users    *repo.UserRepository
	newID    func() string
	logger   zerolog.Logger
}

func NewNetworkService(networks *repo.NetworkRepository, users *repo.UserRepository, newID func() string, logger zerolog.Logger) *NetworkService {
	return &NetworkService{networks: networks, users: users, newID: newID, logger: logger}
}

// load fetches the network and its grants and enforces the visibility
// collapse: a caller without VIEW gets ErrNotFound.
func (s *NetworkService) load(caller Caller, networkID string) (*models.Network, []models.AccessGrant, error) {
	n, err := s.networks.FindByID(networkID)
	if err != nil {
		return nil, nil, err
	}
	grants, err := s.networks.GrantsByNetwork(networkID)
	if err != nil {
		return nil, nil, err
	}
	if policy.Decide(caller.Role, caller.ID, n, grants, policy.View) != policy.Allow {
		return nil, nil, apperr.ErrNotFound
	}
	return n, grants, nil
}

func (s *NetworkService) require(caller Caller, n *models.Network, grants []models.AccessGrant, intent policy.Intent) error {
	if policy.Decide(caller.Role, caller.ID, n, grants, intent) != policy.Allow {
		return apperr.ErrAccessDenied
	}
	return nil
}

// CreateNetwork creates a network owned by the caller with its owner-only
// grant, optionally seeded from a template. Unknown template names fall back
// to the default template.
func (s *NetworkService) CreateNetwork(caller Caller, req dto.CreateNetworkRequest) (*dto.NetworkSummary, error) {
	if caller.Role == policy.RoleReadonly {
		return nil, apperr.ErrAccessDenied
	}
	if req.Name == "" {
		return nil, apperr.Validationf("network name is required")
	}
	n := &models.Network{
		ID:          s.newID(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		OwnerID:     caller.ID,
	}
	ownerGrant := &models.AccessGrant{
		ID:         s.newID(),
		NetworkID:  n.ID,
		AccessType: policy.AccessPrivate,
	}
	if err := s.networks.Create(n, ownerGrant); err != nil {
		return nil, err
	}
	if req.Template != "" {
		tpl := layout.Lookup(req.Template)
		nodes, conns := tpl.Instantiate(n.ID, s.newID, s.logger)
		if err := s.networks.ReplaceGraph(n.ID, nodes, conns); err != nil {
			return nil, err
		}
	}
	return &dto.NetworkSummary{
		ID: n.ID, Name: n.Name, Description: n.Description, Type: n.Type,
		OwnerID: n.OwnerID, OwnerName: caller.Username, AccessLevel: AccessLevelOwner,
		CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
	}, nil
}

// ListNetworks returns every network for admins (with owner names) and the
// owned-plus-shared set for everyone else, annotated with the access level.
func (s *NetworkService) ListNetworks(caller Caller) ([]dto.NetworkSummary, error) {
	if caller.Role == policy.RoleAdmin {
		rows, err := s.networks.ListAll()
		if err != nil {
			return nil, err
		}
		out := make([]dto.NetworkSummary, 0, len(rows))
		for _, row := range rows {
			level := ""
			if row.OwnerID == caller.ID {
				level = AccessLevelOwner
			}
			out = append(out, dto.NetworkSummary{
				ID: row.ID, Name: row.Name, Description: row.Description, Type: row.Type,
				OwnerID: row.OwnerID, OwnerName: row.OwnerName, AccessLevel: level,
				CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
			})
		}
		return out, nil
	}

	nets, err := s.networks.ListVisible(caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NetworkSummary, 0, len(nets))
	for _, n := range nets {
		level := AccessLevelOwner
		if n.OwnerID != caller.ID {
			grants, err := s.networks.GrantsByNetwork(n.ID)
			if err != nil {
				return nil, err
			}
			level = grantLevel(caller.ID, grants)
		}
		out = append(out, dto.NetworkSummary{
			ID: n.ID, Name: n.Name, Description: n.Description, Type: n.Type,
			OwnerID: n.OwnerID, AccessLevel: level,
			CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
		})
	}
	return out, nil
}

func grantLevel(callerID string, grants []models.AccessGrant) string {
	level := ""
	for _, g := range grants {
		if g.AccessType == policy.AccessPublic {
			return AccessLevelPublic
		}
		if g.AccessType == policy.AccessPrivate && g.UserID != nil && *g.UserID == callerID {
			level = AccessLevelShared
		}
	}
	return level
}

// GetLayout returns the live-edit shape of a viewable network.
func (s *NetworkService) GetLayout(caller Caller, networkID string) (*layout.Layout, error) {
	n, _, err := s.load(caller, networkID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.networks.NodesByNetwork(n.ID)
	if err != nil {
		return nil, err
	}
	conns, err := s.networks.ConnectionsByNetwork(n.ID)
	if err != nil {
		return nil, err
	}
	return layout.FromRows(nodes, conns)
}

// SaveLayout atomically replaces the network graph with the submitted one.
// Node and connection identifiers are regenerated server-side.
func (s *NetworkService) SaveLayout(caller Caller, networkID string, l *layout.Layout) error {
	n, grants, err := s.load(caller, networkID)
	if err != nil {
		return err
	}
	if err := s.require(caller, n, grants, policy.Edit); err != nil {
		return err
	}
	nodes, conns, err := layout.ToRows(n.ID, l, s.newID)
	if err != nil {
		return err
	}
	return s.networks.ReplaceGraph(n.ID, nodes, conns)
}

// ExportNetwork returns the versioned download shape of a viewable network.
func (s *NetworkService) ExportNetwork(caller Caller, networkID string) (*layout.Export, error) {
	n, _, err := s.load(caller, networkID)
	if err != nil {
		return nil, err
	}
	nodes, err := s.networks.NodesByNetwork(n.ID)
	if err != nil {
		return nil, err
	}
	conns, err := s.networks.ConnectionsByNetwork(n.ID)
	if err != nil {
		return nil, err
	}
	return layout.BuildExport(n, nodes, conns, time.Now().UTC())
}

// DeleteNetwork removes a network and everything it owns. Owner or admin
// only.
func (s *NetworkService) DeleteNetwork(caller Caller, networkID string) error {
	n, grants, err := s.load(caller, networkID)
	if err != nil {
		return err
	}
	if err := s.require(caller, n, grants, policy.ManageAccess); err != nil {
		return err
	}
	return s.networks.Delete(n.ID)
}

// GetAccessSettings lists the network's grants joined with grantee
// usernames. Owner or admin only.
func (s *NetworkService) GetAccessSettings(caller Caller, networkID string) ([]dto.AccessGrantView, error) {
	n, grants, err := s.load(caller, networkID)
	if err != nil {
		return nil, err
	}
	if err := s.require(caller, n, grants, policy.ManageAccess); err != nil {
		return nil, err
	}
	rows, err := s.networks.GrantsWithUsernames(n.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessGrantView, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.AccessGrantView{
			ID: row.ID, NetworkID: row.NetworkID, AccessType: row.AccessType,
			UserID: row.UserID, Username: row.Username,
		})
	}
	return out, nil
}

// SetAccessSettings replaces the grant set: public opens the network to all
// users, shared targets the listed users, private reverts to owner-only.
func (s *NetworkService) SetAccessSettings(caller Caller, networkID string, req dto.AccessSettingsRequest) error {
	n, grants, err := s.load(caller, networkID)
	if err != nil {
		return err
	}
	if err := s.require(caller, n, grants, policy.ManageAccess); err != nil {
		return err
	}

	var next []models.AccessGrant
	switch req.AccessType {
	case "public":
		next = []models.AccessGrant{{ID: s.newID(), NetworkID: n.ID, AccessType: policy.AccessPublic}}
	case "shared":
		if len(req.UserIDs) == 0 {
			return apperr.Validationf("shared access requires at least one user id")
		}
		seen := make(map[string]bool, len(req.UserIDs))
		for _, uid := range req.UserIDs {
			if seen[uid] {
				continue
			}
			seen[uid] = true
			if _, err := s.users.FindByID(uid); err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return apperr.Validationf("unknown user %q", uid)
				}
				return err
			}
			id := uid
			next = append(next, models.AccessGrant{
				ID: s.newID(), NetworkID: n.ID, AccessType: policy.AccessPrivate, UserID: &id,
			})
		}
	case "private":
		next = []models.AccessGrant{{ID: s.newID(), NetworkID: n.ID, AccessType: policy.AccessPrivate}}
	default:
		return apperr.Validationf("unknown access type %q", req.AccessType)
	}
	return s.networks.SetGrants(n.ID, next)
}
