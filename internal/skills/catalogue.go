package skills

// Category names for the categorized skill tables.
const (
	CategoryProgrammingLanguage = "Programming Language"
	CategoryFramework           = "Framework/Library"
	CategoryCloudDevOps         = "Cloud/DevOps"
	CategoryDatabase            = "Database"
	CategoryTool                = "Tool/Software"
	CategoryMethodology         = "Methodology"
	CategoryAIML                = "AI/ML"
	CategorySoftSkill           = "Soft Skill"
)

// diverseSkills broadens the vocabulary beyond software engineering.
var diverseSkills = []string{
	// soft skills
	"teamwork", "communication", "leadership", "adaptability", "creativity", "hardwork",
	"critical thinking", "time management", "collaboration", "problem solving", "attention to detail",
	// office tools
	"excel", "powerpoint", "word", "outlook", "notion", "trello", "slack", "asana", "miro",
	"google docs", "confluence", "figma", "canva",
	// design and media
	"photoshop", "illustrator", "after effects", "premiere pro", "lightroom",
	"davinci resolve", "blender", "audacity", "capcut",
	// data and BI
	"tableau", "power bi", "qlikview", "alteryx", "pentaho", "knime", "apache nifi", "dbt",
	// marketing
	"google analytics", "semrush", "ahrefs", "mailchimp", "hubspot", "buffer", "hootsuite", "wordpress",
	// engineering
	"autocad", "revit", "solidworks", "matlab", "simulink", "arduino", "raspberry pi",
	// education
	"research", "tutoring", "lesson planning", "classroom management", "curriculum development",
	// HR
	"recruitment", "performance reviews", "payroll", "employee engagement", "hrms",
}

// categorizedSkills lists skills per category, in category display order.
var categorizedSkills = []struct {
	category string
	skills   []string
}{
	{CategoryProgrammingLanguage, []string{
		"python", "java", "javascript", "c++", "c#", "php", "ruby", "swift", "kotlin", "go",
		"scala", "r", "matlab", "typescript", "rust", "perl", "bash", "powershell", "sql", "html",
		"css", "dart", "groovy", "lua",
	}},
	{CategoryFramework, []string{
		"django", "flask", "fastapi", "spring", "react", "angular", "vue", "node.js", "express",
		"tensorflow", "pytorch", "pandas", "numpy", "scikit-learn", "bootstrap", "jquery",
		"laravel", "rails", "asp.net", "flutter", "xamarin", "react native",
	}},
	{CategoryCloudDevOps, []string{
		"hadoop", "spark", "kubernetes", "docker", "aws", "azure", "gcp", "firebase",
		"selenium", "jenkins", "terraform", "ansible", "chef", "puppet", "circleci",
		"travis ci", "github actions", "amazon web services", "google cloud",
	}},
	{CategoryDatabase, []string{
		"mysql", "postgresql", "mongodb", "sqlite", "oracle", "sql server", "redis",
		"cassandra", "dynamodb", "mariadb", "elasticsearch", "neo4j",
	}},
	{CategoryTool, []string{
		"figma", "sketch", "photoshop", "illustrator", "indesign", "xd", "jira", "trello",
		"asana", "git", "github", "gitlab", "bitbucket", "confluence", "notion", "slack",
		"tableau", "power bi", "excel",
	}},
	{CategoryMethodology, []string{
		"agile", "scrum", "kanban", "waterfall", "devops", "ci/cd",
		"test driven development", "tdd", "behavior driven development", "bdd",
	}},
	{CategoryAIML, []string{
		"machine learning", "deep learning", "natural language processing", "nlp",
		"computer vision", "data science", "neural networks", "ai",
		"artificial intelligence", "reinforcement learning", "data mining",
	}},
	{CategorySoftSkill, []string{
		"communication", "teamwork", "problem solving", "critical thinking", "leadership",
		"time management", "adaptability", "creativity", "emotional intelligence",
		"conflict resolution", "presentation", "negotiation", "decision making",
		"project management", "mentoring", "coaching", "analytical skills",
		"attention to detail", "organization", "flexibility", "interpersonal skills",
		"collaboration", "innovation", "work ethic", "customer service",
		"active listening", "research",
	}},
}
