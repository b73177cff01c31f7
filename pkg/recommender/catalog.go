package recommender

import "github.com/2riing/vibe-promptgen/pkg/model"

// Catalog is the fixed corpus ranked by Recommend. Descriptions are English
// keyword bags fed to the embedder and never shown to users.
var Catalog = []model.TechItem{
	// Frontend
	{Name: "React", Description: "web frontend UI component library SPA single page application interactive"},
	{Name: "Next.js", Description: "React fullstack framework SSR SSG server rendering web application"},
	{Name: "Vue", Description: "web frontend progressive framework reactive UI SPA"},
	{Name: "Nuxt", Description: "Vue fullstack framework SSR SSG server rendering"},
	{Name: "Svelte", Description: "web frontend compiler lightweight fast UI reactive"},
	{Name: "Angular", Description: "web frontend enterprise framework TypeScript large scale application"},
	{Name: "Tailwind CSS", Description: "CSS utility-first styling design system web frontend"},
	{Name: "TypeScript", Description: "typed JavaScript static analysis type safety programming language"},

	// Backend
	{Name: "Node.js", Description: "JavaScript server runtime backend API event-driven"},
	{Name: "Express", Description: "Node.js minimal web framework REST API backend server"},
	{Name: "Fastify", Description: "Node.js fast web framework high performance REST API backend"},
	{Name: "Hono", Description: "lightweight edge web framework fast API serverless realtime"},
	{Name: "Django", Description: "Python web framework full-featured admin ORM backend"},
	{Name: "FastAPI", Description: "Python async fast API framework OpenAPI automatic docs"},
	{Name: "Spring Boot", Description: "Java enterprise backend framework microservice large scale"},
	{Name: "Go", Description: "Go golang backend concurrent high performance systems programming"},
	{Name: "Rust", Description: "Rust systems programming performance safety backend low-level"},

	// Mobile
	{Name: "React Native", Description: "mobile app iOS Android cross-platform JavaScript React native"},
	{Name: "Expo", Description: "React Native development platform mobile app build deploy"},
	{Name: "Flutter", Description: "mobile app iOS Android cross-platform Dart Google widget UI"},
	{Name: "Swift", Description: "iOS Apple native mobile app development"},
	{Name: "Kotlin", Description: "Android native mobile app development JVM"},
	{Name: "Capacitor", Description: "hybrid mobile app web technology iOS Android wrapper"},

	// Database
	{Name: "PostgreSQL", Description: "relational database SQL ACID advanced query JSON"},
	{Name: "MySQL", Description: "relational database SQL popular web application"},
	{Name: "MongoDB", Description: "NoSQL document database flexible schema JSON"},
	{Name: "Redis", Description: "in-memory cache realtime pub/sub session fast data"},
	{Name: "SQLite", Description: "embedded lightweight database local file simple"},
	{Name: "Supabase", Description: "backend-as-a-service PostgreSQL realtime auth storage simple serverless"},
	{Name: "DynamoDB", Description: "AWS NoSQL serverless key-value scalable cloud database"},

	// Infra
	{Name: "Docker", Description: "container virtualization deployment packaging DevOps"},
	{Name: "Kubernetes", Description: "container orchestration scaling microservice cluster cloud"},
	{Name: "AWS", Description: "Amazon cloud infrastructure hosting scalable enterprise"},
	{Name: "GCP", Description: "Google cloud platform infrastructure machine learning AI"},
	{Name: "Vercel", Description: "frontend deployment serverless edge hosting Next.js simple"},
	{Name: "Netlify", Description: "frontend deployment JAMstack static hosting simple"},
	{Name: "Cloudflare", Description: "CDN edge network workers serverless security performance"},
}

// jsEcosystem lists the picks that pull TypeScript into the shortlist.
var jsEcosystem = map[string]bool{
	"React":        true,
	"Next.js":      true,
	"Vue":          true,
	"Nuxt":         true,
	"Svelte":       true,
	"Node.js":      true,
	"Express":      true,
	"Fastify":      true,
	"Hono":         true,
	"React Native": true,
	"Expo":         true,
}

const companion = "TypeScript"
