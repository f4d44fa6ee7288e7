package app

// Site copy for the Spanish-language course pages.
const (
	coursesTitle  = "Cursos de Programación Web Gratuitos"
	coursesIntro  = "Aprende las últimas tecnologías web siguiendo los siguientes cursos en vídeo gratuitos."
	backToCourses = "Volver a los cursos"
)
