package db

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/argus/internal/model"
)

func CreateOrganization(name string, city, country *string, isPaid bool) (model.Organization, error) {
	var o model.Organization
	const q = `
	INSERT INTO organizations (name, city, country, is_paid, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, $4, true, now(), now())
	RETURNING id, name, city, country, is_paid, is_active, created_at, updated_at;`
	if err := DB.Get(&o, q, name, city, country, isPaid); err != nil {
		log.Error().Err(err).Msg("CreateOrganization failed")
		return model.Organization{}, err
	}
	return o, nil
}

func GetOrganizationByID(id int) (model.Organization, error) {
	var o model.Organization
	const q = `
	SELECT id, name, city, country, is_paid, is_active, created_at, updated_at
	  FROM organizations WHERE id = $1;`
	err := DB.Get(&o, q, id)
	if err != nil {
		log.Error().Err(err).Int("organization_id", id).Msg("GetOrganizationByID failed")
	}
	return o, err
}

func ListOrganizations() ([]model.Organization, error) {
	var out []model.Organization
	const q = `
	SELECT id, name, city, country, is_paid, is_active, created_at, updated_at
	  FROM organizations ORDER BY id;`
	if err := DB.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("ListOrganizations failed")
		return nil, err
	}
	return out, nil
}
