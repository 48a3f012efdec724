package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	inmateRoutes "prisonsphere_backend/internals/features/inmates/inmates/route"
	paroleRoutes "prisonsphere_backend/internals/features/inmates/paroles/route"
	visitorRoutes "prisonsphere_backend/internals/features/inmates/visitors/route"
	helperOSS "prisonsphere_backend/internals/helpers/oss"
)

// InmatePublicRoutes holds the case routes that do not need a session.
func InmatePublicRoutes(public fiber.Router, db *gorm.DB) {
	paroleRoutes.ParolePublicRoutes(public, db)
}

func InmateRoutes(private fiber.Router, db *gorm.DB, store helperOSS.ObjectStore) {
	inmateRoutes.InmateRoutes(private, db, store)
	visitorRoutes.VisitorRoutes(private, db)
	paroleRoutes.ParoleRoutes(private, db)
}
