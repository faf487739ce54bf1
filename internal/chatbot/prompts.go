package chatbot

// Prompt text used by the engine. The exact wording is not part of any
// contract; the parsing code only relies on the response shapes these ask for
// (yes/no, a bare topic label, a JSON array, a CORRECT:/INCORRECT: prefix).

const topicNamePrompt = `Generate a concise, descriptive topic name (2-4 words max) based on the user's question. Be specific and user-friendly. Examples:
- 'Jenkins CI/CD' instead of 'cicd'
- 'Docker Containers' instead of 'docker'
- 'Kubernetes Deployment' instead of 'kubernetes'
- 'AWS EC2 Setup' instead of 'aws'
- 'Terraform Infrastructure' instead of 'terraform'
- 'Monitoring & Alerting' instead of 'monitoring'
- 'Python FastAPI' instead of 'python'
- 'Machine Learning Basics' instead of 'ml'
Respond with just the topic name.`

const categoryCheckPrompt = `Determine if the given topic/question is related to Programming, DevOps, or AI/Machine Learning.

Programming topics include: web development, software engineering, databases, APIs, frameworks, languages (Python, JavaScript, Java, Go, etc.), software architecture, etc.

DevOps topics include: containerization (Docker, Kubernetes), CI/CD, cloud services (AWS, GCP, Azure), infrastructure as code, monitoring, automation, deployment, etc.

AI/ML topics include: machine learning, artificial intelligence, data science, neural networks, deep learning, natural language processing, computer vision, etc.

Respond with 'yes' if the topic falls into any of these categories, 'no' if it doesn't.`

const conceptExtractionPrompt = `Extract the key technical concepts and topics from the user's question that would be most relevant for searching technical documentation.

Remove conversational elements like politeness ("please", "can you"), question words ("what is", "how does"), personal context ("I'm new to") and filler words.

Focus on technical terms, specific technologies, tools, frameworks and key processes.

Examples:
Input: "Can you please explain how Docker containers work?"
Output: "Docker containers architecture functionality"

Input: "Could you help me understand CI/CD pipelines in Jenkins?"
Output: "CI/CD pipelines Jenkins automation deployment"

Return only the key concepts as a concise phrase (2-8 words max).`

const lessonSystemPrompt = `You are an expert learning assistant specializing in Programming, DevOps, and AI topics.
Create a well-structured educational lesson about the requested topic.

Requirements:
- Provide an in-depth lesson (7-10 paragraphs) with detailed explanations, examples, and best practices
- Use clear headings and structure (## for main sections)
- Include practical examples and code snippets where relevant
- Focus on hands-on learning and real-world applications
- End with actionable next steps or practice suggestions

Context for reference:
`

const quizGenerationPrompt = `You are creating an interactive quiz based on the conversation history. You MUST respond with ONLY a valid JSON array, nothing else.

Generate 5 COMPLETELY DIFFERENT quiz questions that test understanding of the concepts discussed.

CRITICAL REQUIREMENTS:
- Questions MUST be directly related to what was discussed in the conversation
- Create DIVERSE questions covering different aspects of the topic
- Mix question types: multiple choice, true/false, and short answer
- Test understanding and application, NOT just memorization
- Questions should be SIGNIFICANTLY DIFFERENT from any previously asked questions

JSON FORMAT REQUIRED:
[
  {
    "question": "What is the main purpose of Docker containers?",
    "type": "multiple_choice",
    "options": ["Virtual machine replacement", "Application containerization", "Network management", "Storage solutions"],
    "correct_answer": "Application containerization",
    "explanation": "Docker containers provide lightweight containerization for applications."
  }
]

CRITICAL:
- For multiple choice: the options array MUST contain ONLY plain text, NO letter prefixes like "A.", "B.", "C.", "D."

Return ONLY the JSON array. No explanations, no markdown, no code blocks.

Previously asked questions to AVOID repeating:
`

const answerEvaluationPrompt = `Evaluate the user's answer to the quiz question. Be encouraging and educational.

CRITICAL: You must start your response with EXACTLY one of these:
- "CORRECT:" if the answer is right
- "INCORRECT:" if the answer is wrong

For multiple choice questions:
- Compare the user's letter (A, B, C, D) with the option that matches the correct answer
- Be flexible: accept both letter answers and full text answers

For short answer questions:
- Be flexible and accept answers that demonstrate understanding
- Look for key concepts rather than exact wording

Format your response as:
CORRECT: [Brief explanation and educational insight]
OR
INCORRECT: The correct answer is [correct answer]. [Brief explanation and educational insight]`

// Canned replies that never involve a model call.
const (
	categoryRejectionMessage = "I'm sorry, but I can only help with topics related to Programming, DevOps, and AI/Machine Learning. Please ask a question about software development, infrastructure, automation, data science, or related technical topics."

	apologyMessage = "I'm sorry, I encountered an error while processing your message. Please try again."

	noQuizMessage = "No quiz in progress."
)
