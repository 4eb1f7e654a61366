package repo

import (
	"time"

	"gorm.io/gorm"

	"netsketch/app/apperr"
	"netsketch/app/models"
	"netsketch/app/policy"
)

// NetworkRepository is the graph store: networks with their nodes,
// connections and access grants. Multi-row mutations run inside a single
// transaction so readers only ever observe the graph before or after a
// replace, never in between.
type NetworkRepository struct{ db *gorm.DB }

func NewNetworkRepository(db *gorm.DB) *NetworkRepository { return &NetworkRepository{db: db} }

// Create inserts the network together with its owner-only grant.
func (r *NetworkRepository) Create(n *models.Network, ownerGrant *models.AccessGrant) error {
	return apperr.FromDB(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		return tx.Create(ownerGrant).Error
	}))
}

func (r *NetworkRepository) FindByID(id string) (*models.Network, error) {
	var n models.Network
	if err := r.db.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return &n, nil
}

// NetworkWithOwner joins a network row with its owner's username.
type NetworkWithOwner struct {
	models.Network
	OwnerName string
}

// ListAll returns every network with the owner username attached, for the
// admin listing.
func (r *NetworkRepository) ListAll() ([]NetworkWithOwner, error) {
	var rows []NetworkWithOwner
	err := r.db.Model(&models.Network{}).
		Select("networks.*, users.username AS owner_name").
		Joins("LEFT JOIN users ON users.id = networks.owner_id").
		Order("networks.name").
		Scan(&rows).Error
	return rows, apperr.FromDB(err)
}

// ListVisible returns networks the user owns plus networks shared with them
// through a public grant or a private grant naming them.
func (r *NetworkRepository) ListVisible(userID string) ([]models.Network, error) {
	granted := r.db.Model(&models.AccessGrant{}).
		Select("network_id").
		Where("access_type = ? OR user_id = ?", policy.AccessPublic, userID)
	var nets []models.Network
	err := r.db.Where("owner_id = ? OR id IN (?)", userID, granted).
		Order("name").
		Find(&nets).Error
	return nets, apperr.FromDB(err)
}

func (r *NetworkRepository) NodesByNetwork(networkID string) ([]models.Node, error) {
	var nodes []models.Node
	err := r.db.Where("network_id = ?", networkID).Order("name").Find(&nodes).Error
	return nodes, apperr.FromDB(err)
}

func (r *NetworkRepository) ConnectionsByNetwork(networkID string) ([]models.Connection, error) {
	var conns []models.Connection
	err := r.db.Where("network_id = ?", networkID).Find(&conns).Error
	return conns, apperr.FromDB(err)
}

func (r *NetworkRepository) GrantsByNetwork(networkID string) ([]models.AccessGrant, error) {
	var grants []models.AccessGrant
	err := r.db.Where("network_id = ?", networkID).Find(&grants).Error
	return grants, apperr.FromDB(err)
}

// GrantWithUser joins a grant with its grantee's username; Username is nil
// for public and owner-only grants.
type GrantWithUser struct {
	models.AccessGrant
	Username *string
}

func (r *NetworkRepository) GrantsWithUsernames(networkID string) ([]GrantWithUser, error) {
	var rows []GrantWithUser
	err := r.db.Model(&models.AccessGrant{}).
		Select("access_grants.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = access_grants.user_id").
		Where("access_grants.network_id = ?", networkID).
		Scan(&rows).Error
	return rows, apperr.FromDB(err)
}

// ReplaceGraph swaps the network's full node and connection sets in one
// transaction and bumps updated_at. A connection referencing a node id
// outside the supplied node set fails the whole call before anything is
// written.
func (r *NetworkRepository) ReplaceGraph(networkID string, nodes []models.Node, conns []models.Connection) error {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	for _, c := range conns {
		if !present[c.FromNodeID] || !present[c.ToNodeID] {
			return apperr.Validationf("connection %s references a node outside the network", c.ID)
		}
	}
	return apperr.FromDB(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("network_id = ?", networkID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("network_id = ?", networkID).Delete(&models.Node{}).Error; err != nil {
			return err
		}
		if len(nodes) > 0 {
			if err := tx.Create(&nodes).Error; err != nil {
				return err
			}
		}
		if len(conns) > 0 {
			if err := tx.Create(&conns).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Network{}).Where("id = ?", networkID).
			Update("updated_at", time.Now()).Error
	}))
}

// Delete removes the network and cascades to its nodes, connections and
// grants.
func (r *NetworkRepository) Delete(networkID string) error {
	return apperr.FromDB(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("network_id = ?", networkID).Delete(&models.Connection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("network_id = ?", networkID).Delete(&models.Node{}).Error; err != nil {
			return err
		}
		if err := tx.Where("network_id = ?", networkID).Delete(&models.AccessGrant{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", networkID).Delete(&models.Network{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	}))
}

// SetGrants replaces the network's grant set atomically.
func (r *NetworkRepository) SetGrants(networkID string, grants []models.AccessGrant) error {
	return apperr.FromDB(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("network_id = ?", networkID).Delete(&models.AccessGrant{}).Error; err != nil {
			return err
		}
		if len(grants) > 0 {
			return tx.Create(&grants).Error
		}
		return nil
	}))
}
