package docs

// @title           Geo Attendance API
// @version         1.0
// @description     Classroom check-in: students confirm their enrollment and location, enter the lecture code and mark attendance. Lecturers start lectures, watch attendance live and export it.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7860
// @BasePath  /

// @securityDefinitions.basic BasicAuth
