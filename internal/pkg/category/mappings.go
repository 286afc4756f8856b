package category

// categoryMappings maps lowercased cleaned labels to canonical category
// names. Many labels map to one canonical entry; casing of the value is used
// verbatim. Built once at init, never mutated.
var categoryMappings = map[string]string{
	// machine learning / data
	"ai":                      "Machine Learning",
	"ml":                      "Machine Learning",
	"ai/ml":                   "Machine Learning",
	"artificial intelligence": "Machine Learning",
	"machine learning":        "Machine Learning",
	"deep learning":           "Machine Learning",
	"neural networks":         "Machine Learning",
	"llm":                     "Machine Learning",
	"llms":                    "Machine Learning",
	"large language models":   "Machine Learning",
	"nlp":                     "Natural Language Processing",
	"natural language processing": "Natural Language Processing",
	"computer vision":            "Computer Vision",
	"data science":               "Data Science",
	"data analysis":              "Data Science",
	"data analytics":             "Data Science",
	"data visualization":         "Data Visualization",
	"data viz":                   "Data Visualization",
	"big data":                   "Big Data",
	"data engineering":           "Data Engineering",
	"etl":                        "Data Engineering",
	"data pipelines":             "Data Engineering",

	// databases / storage
	"db":                "Databases",
	"dbs":               "Databases",
	"database":          "Databases",
	"databases":         "Databases",
	"rdbms":             "Databases",
	"sql":               "Databases",
	"nosql":             "Databases",
	"key-value stores":  "Databases",
	"graph databases":   "Databases",
	"time series":       "Time Series Databases",
	"time series databases": "Time Series Databases",
	"orm":          "ORM",
	"orms":         "ORM",
	"caching":      "Caching",
	"cache":        "Caching",
	"object storage": "Storage",
	"storage":        "Storage",
	"file systems":   "Storage",
	"backup":         "Backups",
	"backups":        "Backups",
	"backup software": "Backups",

	// web
	"web":                   "Web Development",
	"web dev":               "Web Development",
	"web development":       "Web Development",
	"frontend":              "Frontend Development",
	"front-end":             "Frontend Development",
	"front end":             "Frontend Development",
	"frontend development":  "Frontend Development",
	"backend":               "Backend Development",
	"back-end":              "Backend Development",
	"backend development":   "Backend Development",
	"fullstack":             "Web Development",
	"full stack":            "Web Development",
	"web frameworks":        "Web Frameworks",
	"web framework":         "Web Frameworks",
	"http":                  "HTTP Clients",
	"http clients":          "HTTP Clients",
	"rest":                  "API Development",
	"rest api":              "API Development",
	"rest apis":             "API Development",
	"api":                   "API Development",
	"apis":                  "API Development",
	"graphql":               "GraphQL",
	"websocket":             "WebSockets",
	"websockets":            "WebSockets",
	"cms":                   "Content Management",
	"content management":    "Content Management",
	"content management systems": "Content Management",
	"static site generators":     "Static Site Generators",
	"ssg":                        "Static Site Generators",
	"e-commerce":                 "E-commerce",
	"ecommerce":                  "E-commerce",
	"seo":                        "SEO",

	// ui
	"ui":            "UI Components",
	"ui components": "UI Components",
	"ui libraries":  "UI Components",
	"gui":           "GUI",
	"css":           "CSS",
	"css frameworks": "CSS",
	"design":         "Design",
	"design tools":   "Design",
	"icons":          "Icons",
	"fonts":          "Fonts",
	"charts":         "Data Visualization",
	"charting":       "Data Visualization",
	"animation":      "Animations",
	"animations":     "Animations",

	// mobile / desktop
	"mobile":              "Mobile Development",
	"mobile development":  "Mobile Development",
	"android":             "Android",
	"ios":                 "iOS",
	"cross-platform":      "Cross-Platform",
	"cross platform":      "Cross-Platform",
	"desktop":             "Desktop Applications",
	"desktop apps":        "Desktop Applications",
	"desktop applications": "Desktop Applications",
	"electron":             "Desktop Applications",

	// devops / infra
	"devops":                   "DevOps",
	"ci":                       "Continuous Integration",
	"cd":                       "Continuous Integration",
	"ci/cd":                    "Continuous Integration",
	"cicd":                     "Continuous Integration",
	"continuous integration":   "Continuous Integration",
	"continuous delivery":      "Continuous Integration",
	"continuous deployment":    "Continuous Integration",
	"deployment":               "Deployment",
	"deploy":                   "Deployment",
	"containers":               "Containers",
	"container":                "Containers",
	"docker":                   "Containers",
	"kubernetes":               "Kubernetes",
	"k8s":                      "Kubernetes",
	"orchestration":            "Orchestration",
	"iac":                      "Infrastructure as Code",
	"infrastructure as code":   "Infrastructure as Code",
	"terraform":                "Infrastructure as Code",
	"configuration management": "Configuration Management",
	"config management":        "Configuration Management",
	"monitoring":               "Monitoring",
	"observability":            "Monitoring",
	"metrics":                  "Monitoring",
	"alerting":                 "Monitoring",
	"logging":                  "Logging",
	"logs":                     "Logging",
	"log management":           "Logging",
	"tracing":                  "Tracing",
	"serverless":               "Serverless",
	"faas":                     "Serverless",
	"cloud":                    "Cloud",
	"cloud computing":          "Cloud",
	"aws":                      "Cloud",
	"self-hosted":              "Self-Hosted",
	"self hosted":              "Self-Hosted",
	"selfhosted":               "Self-Hosted",
	"sysadmin":                 "System Administration",
	"system administration":    "System Administration",
	"virtualization":           "Virtualization",
	"load balancing":           "Load Balancers",
	"load balancers":           "Load Balancers",
	"proxy":                    "Proxies",
	"proxies":                  "Proxies",
	"reverse proxy":            "Proxies",
	"web servers":              "Web Servers",
	"web server":               "Web Servers",

	// security
	"security":            "Security",
	"infosec":             "Security",
	"cybersecurity":       "Security",
	"cyber security":      "Security",
	"appsec":              "Security",
	"application security": "Security",
	"pentesting":           "Penetration Testing",
	"penetration testing":  "Penetration Testing",
	"cryptography":         "Cryptography",
	"crypto":               "Cryptography",
	"encryption":           "Cryptography",
	"authentication":       "Authentication",
	"auth":                 "Authentication",
	"authorization":        "Authentication",
	"identity":             "Authentication",
	"sso":                  "Authentication",
	"oauth":                "Authentication",
	"privacy":              "Privacy",
	"vpn":                  "VPN",
	"firewalls":            "Firewalls",
	"firewall":             "Firewalls",

	// testing / quality
	"testing":            "Testing",
	"tests":              "Testing",
	"unit testing":       "Testing",
	"test automation":    "Testing",
	"e2e testing":        "Testing",
	"end-to-end testing": "Testing",
	"mocking":            "Testing",
	"benchmarking":       "Benchmarking",
	"benchmarks":         "Benchmarking",
	"code quality":       "Code Quality",
	"linters":            "Code Quality",
	"linting":            "Code Quality",
	"static analysis":    "Code Quality",
	"code review":        "Code Review",
	"debugging":          "Debugging",
	"profiling":          "Profiling",

	// tooling
	"cli":                    "Command Line",
	"command line":           "Command Line",
	"command-line":           "Command Line",
	"terminal":               "Command Line",
	"shell":                  "Command Line",
	"util":                   "Utilities",
	"utils":                  "Utilities",
	"utility":                "Utilities",
	"utilities":              "Utilities",
	"helpers":                "Utilities",
	"developer tools":        "Developer Tools",
	"dev tools":              "Developer Tools",
	"devtools":               "Developer Tools",
	"tooling":                "Developer Tools",
	"editors":                "Editors",
	"editor":                 "Editors",
	"text editors":           "Editors",
	"ide":                    "Editors",
	"ides":                   "Editors",
	"vim":                    "Editors",
	"emacs":                  "Editors",
	"version control":        "Version Control",
	"git":                    "Version Control",
	"vcs":                    "Version Control",
	"build tools":            "Build Tools",
	"build systems":          "Build Tools",
	"package managers":       "Package Managers",
	"package management":     "Package Managers",
	"dependency management":  "Package Managers",
	"documentation":          "Documentation",
	"docs":                   "Documentation",
	"documentation generators": "Documentation",
	"productivity":             "Productivity",
	"automation":               "Automation",
	"scripting":                "Automation",

	// languages (labels that really mean "about the language")
	"go":         "Go",
	"golang":     "Go",
	"python":     "Python",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"rust":       "Rust",
	"java":       "Java",
	"kotlin":     "Kotlin",
	"swift":      "Swift",
	"ruby":       "Ruby",
	"php":        "PHP",
	"c++":        "C++",
	"cpp":        "C++",
	"c#":         "C#",
	"csharp":     "C#",
	"haskell":    "Haskell",
	"elixir":     "Elixir",
	"erlang":     "Erlang",
	"scala":      "Scala",
	"lua":        "Lua",
	"dart":       "Dart",
	"zig":        "Zig",
	"webassembly": "WebAssembly",
	"wasm":        "WebAssembly",

	// networking / messaging
	"networking":       "Networking",
	"network":          "Networking",
	"dns":              "Networking",
	"messaging":        "Messaging",
	"message queues":   "Messaging",
	"message brokers":  "Messaging",
	"queueing":         "Messaging",
	"queues":           "Messaging",
	"mq":               "Messaging",
	"pubsub":           "Messaging",
	"pub/sub":          "Messaging",
	"event streaming":  "Messaging",
	"rpc":              "RPC",
	"grpc":             "RPC",
	"email":            "Email",
	"e-mail":           "Email",
	"mail":             "Email",
	"mail servers":     "Email",
	"chat":             "Communication",
	"communication":    "Communication",
	"voip":             "Communication",
	"video conferencing": "Communication",

	// media / content
	"media streaming":  "Media Streaming",
	"streaming":        "Media Streaming",
	"video":            "Video",
	"video processing": "Video",
	"audio":            "Audio",
	"audio processing": "Audio",
	"music":            "Audio",
	"images":           "Image Processing",
	"image processing": "Image Processing",
	"imagery":          "Image Processing",
	"photography":      "Photography",
	"games":            "Game Development",
	"gaming":           "Game Development",
	"game dev":         "Game Development",
	"game development": "Game Development",
	"game engines":     "Game Development",
	"pdf":              "Document Management",
	"document management": "Document Management",
	"file sharing":        "File Transfer",
	"file transfer":       "File Transfer",
	"file sync":           "File Transfer",
	"download managers":   "File Transfer",

	// misc domains
	"blockchain":       "Blockchain",
	"web3":             "Blockchain",
	"cryptocurrency":   "Blockchain",
	"cryptocurrencies": "Blockchain",
	"iot":              "IoT",
	"internet of things": "IoT",
	"embedded":           "Embedded Systems",
	"embedded systems":   "Embedded Systems",
	"robotics":           "Robotics",
	"gis":                "Geospatial",
	"geospatial":         "Geospatial",
	"maps":               "Geospatial",
	"mapping":            "Geospatial",
	"bioinformatics":     "Bioinformatics",
	"finance":            "Finance",
	"fintech":            "Finance",
	"bookmarks":          "Bookmarks",
	"bookmark managers":  "Bookmarks",
	"note taking":        "Note Taking",
	"note-taking":        "Note Taking",
	"notes":              "Note Taking",
	"wikis":              "Wikis",
	"wiki":               "Wikis",
	"wiki software":      "Wikis",
	"rss":                "Feed Readers",
	"feed readers":       "Feed Readers",
	"rss readers":        "Feed Readers",
	"search":             "Search Engines",
	"search engines":     "Search Engines",
	"full-text search":   "Search Engines",
	"analytics":          "Analytics",
	"web analytics":      "Analytics",
	"visualization":      "Data Visualization",
	"compression":        "Compression",
	"serialization":      "Serialization",
	"parsing":            "Parsers",
	"parsers":            "Parsers",
	"regex":              "Parsers",
	"concurrency":        "Concurrency",
	"distributed systems": "Distributed Systems",
	"microservices":       "Microservices",
	"service mesh":        "Microservices",
	"performance":         "Performance",
	"optimization":        "Performance",
	"internationalization": "Internationalization",
	"i18n":                 "Internationalization",
	"localization":         "Internationalization",
	"l10n":                 "Internationalization",
	"accessibility":        "Accessibility",
	"a11y":                 "Accessibility",
	"education":            "Learning Resources",
	"learning":             "Learning Resources",
	"tutorials":            "Learning Resources",
	"books":                "Learning Resources",
	"courses":              "Learning Resources",
}

// skipHeaders are meta section titles that never become categories.
var skipHeaders = map[string]bool{
	"contents":          true,
	"table of contents": true,
	"toc":               true,
	"resources":         true,
	"see also":          true,
	"related":           true,
	"related lists":     true,
	"license":           true,
	"licence":           true,
	"licenses":          true,
	"contributing":      true,
	"contribution":      true,
	"contributors":      true,
	"credits":           true,
	"acknowledgements":  true,
	"about":             true,
	"introduction":      true,
	"overview":          true,
	"miscellaneous":     true,
	"misc":              true,
	"other":             true,
	"others":            true,
	"uncategorized":     true,
	"faq":               true,
	"community":         true,
	"sponsors":          true,
	"footnotes":         true,
}

// acronyms keeps known all-caps (or fixed-case) words intact during
// title-casing.
var acronyms = map[string]string{
	"api":   "API",
	"apis":  "APIs",
	"cli":   "CLI",
	"css":   "CSS",
	"db":    "DB",
	"dns":   "DNS",
	"ftp":   "FTP",
	"gui":   "GUI",
	"html":  "HTML",
	"http":  "HTTP",
	"https": "HTTPS",
	"ide":   "IDE",
	"ides":  "IDEs",
	"ios":   "iOS",
	"iot":   "IoT",
	"json":  "JSON",
	"jwt":   "JWT",
	"macos": "macOS",
	"orm":   "ORM",
	"os":    "OS",
	"pdf":   "PDF",
	"php":   "PHP",
	"rest":  "REST",
	"rpc":   "RPC",
	"rss":   "RSS",
	"sdk":   "SDK",
	"sdks":  "SDKs",
	"seo":   "SEO",
	"sql":   "SQL",
	"ssh":   "SSH",
	"ssl":   "SSL",
	"tls":   "TLS",
	"ui":    "UI",
	"url":   "URL",
	"urls":  "URLs",
	"ux":    "UX",
	"vpn":   "VPN",
	"xml":   "XML",
	"yaml":  "YAML",
}

// massNouns is the set of final words that are never pluralized.
var massNouns = map[string]bool{
	"security":       true,
	"documentation":  true,
	"performance":    true,
	"software":       true,
	"hardware":       true,
	"middleware":     true,
	"automation":     true,
	"infrastructure": true,
	"storage":        true,
	"music":          true,
	"audio":          true,
	"video":          true,
	"media":          true,
	"data":           true,
	"research":       true,
	"science":        true,
	"privacy":        true,
	"email":          true,
	"productivity":   true,
	"accessibility":  true,
	"observability":  true,
	"cryptography":   true,
	"go":             true,
	"web":            true,
}
