package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Rol{},
		&model.Puesto{},
		&model.Usuario{},
		&model.Comunicado{},
		&model.SolicitudVacaciones{},
		&model.Incapacidad{},
		&model.SolicitudCertificacion{},
		&model.Vacante{},
		&model.Postulacion{},
		&model.Comentario{},
		&model.IntervaloDisponibilidad{},
		&model.Adjunto{},
		&model.Notificacion{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Rol{
		{Nombre: model.RolAdmin, Descripcion: "Administrador de recursos humanos"},
		{Nombre: model.RolColaborador, Descripcion: "Colaborador de la compañía"},
	}

	for _, rol := range defaultRoles {
		var count int64
		if err := db.Model(&model.Rol{}).
			Where("nombre = ?", rol.Nombre).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&rol).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRol model.Rol
	if err := db.Where("nombre = ?", model.RolAdmin).First(&adminRol).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.Usuario{}).
		Where("correo = ?", "rrhh@portalrh.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.Usuario{
		Nombre:       "Recursos Humanos",
		Correo:       "rrhh@portalrh.local",
		PasswordHash: string(hashedPasswordBytes),
		RolID:        &adminRol.ID,
		Estado:       model.EstadoUsuarioActivo,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Correo: rrhh@portalrh.local")
	log.Println("   Password: admin123")

	return nil
}
