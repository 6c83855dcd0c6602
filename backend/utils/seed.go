package utils

import (
	"encoding/json"
	"fmt"

	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/models"
	"github.com/Pibe-Ancajima/Plataforma-educacion/backend/services"

	"gorm.io/gorm"
)

type seedQuestion struct {
	Prompt  string
	Options []string
	Correct int
}

var seedQuestionBank = map[string][]seedQuestion{
	"Matemáticas": {
		{"¿Cuánto es 15 + 25?", []string{"30", "40", "45"}, 1},
		{"Si tienes 3 manzanas y comes 1, ¿cuántas quedan?", []string{"2", "1", "0"}, 0},
		{"¿Cuánto es 5 x 5?", []string{"10", "25", "55"}, 1},
		{"¿Cuál es el número par?", []string{"3", "7", "8"}, 2},
		{"¿Cuánto es 100 - 50?", []string{"40", "50", "60"}, 1},
	},
	"Arte": {
		{"¿Cuál de los siguientes es un color primario?", []string{"Verde", "Rojo", "Naranja"}, 1},
		{"¿Qué herramienta se usa para pintar en lienzo?", []string{"Martillo", "Pincel", "Destornillador"}, 1},
		{"¿Qué color obtienes al mezclar azul y amarillo?", []string{"Verde", "Morado", "Naranja"}, 0},
		{"¿Cuál es el opuesto de negro?", []string{"Azul", "Blanco", "Rojo"}, 1},
		{"¿Qué forma tiene un balón de fútbol?", []string{"Cuadrado", "Esfera", "Triángulo"}, 1},
	},
	"Inglés": {
		{"¿Cómo se dice \"Perro\" en inglés?", []string{"Cat", "Dog", "Bird"}, 1},
		{"Completa la frase: \"Hello, how are ____?\"", []string{"you", "is", "me"}, 0},
		{"¿Qué color es \"Blue\"?", []string{"Rojo", "Azul", "Verde"}, 1},
		{"Traduce \"Good Morning\"", []string{"Buenas noches", "Buenos días", "Hola"}, 1},
		{"El número \"One\" es:", []string{"1", "2", "3"}, 0},
	},
	"Computación": {
		{"¿Qué dispositivo se usa para mover el cursor?", []string{"Teclado", "Ratón (Mouse)", "Impresora"}, 1},
		{"¿Cuál es el cerebro de la computadora?", []string{"Monitor", "CPU", "Teclado"}, 1},
		{"¿Para qué sirve el monitor?", []string{"Para ver la información", "Para escribir", "Para escuchar música"}, 0},
		{"Internet nos sirve para:", []string{"Solo jugar", "Buscar información y comunicarse", "Cocinar"}, 1},
		{"¿Qué tecla borra caracteres?", []string{"Enter", "Espacio", "Backspace (Retroceso)"}, 2},
	},
	"Ciencias": {
		{"¿Qué necesitan las plantas para crecer?", []string{"Solo oscuridad", "Agua y Sol", "Jugo"}, 1},
		{"¿Cuál es el planeta más grande del sistema solar?", []string{"Tierra", "Marte", "Júpiter"}, 2},
		{"El agua hierve a:", []string{"100°C", "0°C", "50°C"}, 0},
		{"¿Qué animal es un mamífero?", []string{"Perro", "Cocodrilo", "Pez"}, 0},
		{"La Tierra gira alrededor de:", []string{"La Luna", "El Sol", "Marte"}, 1},
	},
	"Música": {
		{"¿Cuántas notas musicales básicas existen (Do-Si)?", []string{"5", "7", "10"}, 1},
		{"¿Qué instrumento tiene teclas blancas y negras?", []string{"Guitarra", "Piano", "Tambor"}, 1},
		{"El sonido fuerte se llama:", []string{"Forte", "Piano", "Silencio"}, 0},
		{"¿Qué figura musical dura 4 tiempos?", []string{"Negra", "Redonda", "Corchea"}, 1},
		{"Para cantar usamos:", []string{"Las manos", "La voz", "Los pies"}, 1},
	},
}

type seedCourse struct {
	Title      string
	Category   string
	Desc       string
	Image      string
	Price      float64
	Instructor string
	MinPlan    string
	Topic      string
}

var seedCourses = []seedCourse{
	{"Arte y Diseño Digital", "Arte", "Domina los fundamentos del color y herramientas digitales. (Plan Gratuito)", "https://picsum.photos/seed/art/400/250", 0, "María Rodríguez", services.PlanFree, "Diseño Digital"},
	{"Matemáticas Divertidas", "Matemáticas", "Aprende matemáticas jugando. (Plan Gratuito)", "https://picsum.photos/seed/math/400/250", 0, "Prof. Carlos Ruiz", services.PlanFree, "Matemáticas"},
	{"Inglés para Niños", "Inglés", "Vocabulario básico y frases divertidas. (Plan Gratuito)", "https://picsum.photos/seed/english/400/250", 0, "Sarah Jenkins", services.PlanFree, "Inglés"},
	{"Computación Básica", "Computación", "Conoce tu computadora y navega seguro. (Plan Individual)", "https://picsum.photos/seed/comp/400/250", 31.00, "Juan Pérez", services.PlanIndividual, "Computación"},
	{"Ciencias Naturales", "Ciencias", "Explora el mundo natural y el espacio. (Plan Individual)", "https://picsum.photos/seed/science/400/250", 31.00, "Dra. Elena Gómez", services.PlanIndividual, "Ciencias"},
	{"Música y Ritmo", "Música", "Aprende las notas musicales y ritmos básicos. (Plan Individual)", "https://picsum.photos/seed/music/400/250", 31.00, "Maestro Luis Torres", services.PlanIndividual, "Música"},
}

// Seed loads the initial course catalog. It is a no-op when courses
// already exist, so restarts never duplicate content.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, sc := range seedCourses {
		course := models.Course{
			Title:       sc.Title,
			Category:    sc.Category,
			Description: sc.Desc,
			Image:       sc.Image,
			Price:       sc.Price,
			Instructor:  sc.Instructor,
			MinPlan:     sc.MinPlan,
		}

		bank := seedQuestionBank[sc.Category]
		for i := 0; i < 5; i++ {
			lesson := models.Lesson{
				Title:         fmt.Sprintf("Clase %d: %s - Parte %d", i+1, sc.Topic, i+1),
				Duration:      fmt.Sprintf("%d min", 15+i*2),
				VideoURL:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
				SequenceOrder: i,
			}
			for j, q := range bank {
				opts, err := json.Marshal(q.Options)
				if err != nil {
					return err
				}
				lesson.Questions = append(lesson.Questions, models.Question{
					Prompt:        q.Prompt,
					Options:       string(opts),
					CorrectAnswer: q.Correct,
					SequenceOrder: j,
				})
			}
			course.Lessons = append(course.Lessons, lesson)
		}

		for i := 0; i < 10; i++ {
			opts, err := json.Marshal([]string{
				"Respuesta Correcta",
				"Opción Incorrecta A",
				"Opción Incorrecta B",
				"Opción Incorrecta C",
			})
			if err != nil {
				return err
			}
			course.ExamQuestions = append(course.ExamQuestions, models.ExamQuestion{
				Prompt:        fmt.Sprintf("Pregunta de Examen Final #%d (%s): ¿Cuál es la opción correcta?", i+1, sc.Category),
				Options:       string(opts),
				CorrectAnswer: 0,
				SequenceOrder: i,
			})
		}

		if err := db.Create(&course).Error; err != nil {
			return err
		}
	}
	return nil
}
